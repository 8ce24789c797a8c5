package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"custody_wallet_back/models"
	"custody_wallet_back/pkg/cache"
	"custody_wallet_back/pkg/notify"
)

type TransferService struct {
	orchestrator *TransferOrchestrator
	cache        cache.Cache
	notifier     notify.Notifier
}

func NewTransferService(orchestrator *TransferOrchestrator, c cache.Cache, n notify.Notifier) *TransferService {
	if n == nil {
		n = notify.Nop{}
	}
	return &TransferService{orchestrator: orchestrator, cache: c, notifier: n}
}

func (s *TransferService) CreateTransfer(ctx context.Context, req models.TransferRequest) (models.TransferOutcome, error) {
	outcome, err := s.orchestrator.Run(ctx, req)

	if outcome.TransferID != "" || outcome.Status == models.TransferPending {
		addressID := outcome.AddressID
		if addressID == "" {
			addressID = req.SourceAddressID
		}
		invalidate(ctx, s.cache, req.SourceWalletID, addressID)
	}
	if outcome.TransferID != "" {
		if nerr := s.notifier.TransferFinished(ctx, req, outcome); nerr != nil {
			logrus.WithError(nerr).WithField("transfer_id", outcome.TransferID).Warn("transfer notification not sent")
		}
	}
	return outcome, err
}
