package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"custody_wallet_back/models"
)

const platformStatusComplete = "complete"

// sessionOpener is the part of WalletSession the orchestrator needs.
type sessionOpener interface {
	Open(ctx context.Context, walletID string) (*models.SignedWallet, error)
}

// TransferOrchestrator drives one transfer through
// validate -> resolve -> submit -> await -> classify. Nothing is retried.
type TransferOrchestrator struct {
	platform Platform
	sessions sessionOpener
}

func NewTransferOrchestrator(platform Platform, sessions sessionOpener) *TransferOrchestrator {
	return &TransferOrchestrator{platform: platform, sessions: sessions}
}

// Run returns a complete outcome and a nil error, or a failed/pending outcome
// whose FailureReason is the returned error.
func (o *TransferOrchestrator) Run(ctx context.Context, req models.TransferRequest) (models.TransferOutcome, error) {
	valid, err := ValidateTransfer(req)
	if err != nil {
		return failed(err)
	}

	log := logrus.WithFields(logrus.Fields{
		"wallet_id":  req.SourceWalletID,
		"address_id": req.SourceAddressID,
		"asset_id":   valid.AssetID,
	})

	signed, from, err := o.resolve(ctx, req)
	if err != nil {
		log.WithError(err).Warn("transfer source not resolved")
		return failed(err)
	}

	ticket, err := o.platform.CreateTransfer(ctx, signed, from, valid)
	if errors.Is(err, models.ErrOutcomeUnknown) {
		// The request may have reached the platform; this is not a rejection.
		log.WithError(err).Warn("transfer submission unanswered")
		return models.TransferOutcome{
			Status:        models.TransferPending,
			AddressID:     ticket.AddressID,
			FailureReason: err,
		}, err
	}
	if err != nil {
		err = submissionError(err)
		log.WithError(err).Warn("transfer rejected")
		return failed(err)
	}
	log = log.WithField("transfer_id", ticket.TransferID)
	log.Info("transfer submitted")

	// From here the transfer exists remotely; giving up only loses the outcome.
	state, err := o.platform.AwaitTransfer(ctx, ticket)
	if err != nil {
		if !errors.Is(err, models.ErrOutcomeUnknown) {
			err = errors.Wrap(models.ErrOutcomeUnknown, err.Error())
		}
		log.WithError(err).Warn("stopped waiting for transfer")
		return models.TransferOutcome{
			Status:        models.TransferPending,
			TransferID:    ticket.TransferID,
			AddressID:     ticket.AddressID,
			FailureReason: err,
		}, err
	}

	if state.Status != platformStatusComplete {
		err := errors.Wrapf(models.ErrTransferFailed, "platform status %q", state.Status)
		log.WithField("status", state.Status).Warn("transfer failed")
		return models.TransferOutcome{
			Status:        models.TransferFailed,
			TransferID:    ticket.TransferID,
			AddressID:     ticket.AddressID,
			FailureReason: err,
		}, err
	}

	log.WithField("transaction_link", state.TransactionLink).Info("transfer complete")
	return models.TransferOutcome{
		Status:          models.TransferComplete,
		TransferID:      ticket.TransferID,
		AddressID:       ticket.AddressID,
		TransactionLink: state.TransactionLink,
	}, nil
}

// resolve opens the session and picks the signing context once.
func (o *TransferOrchestrator) resolve(ctx context.Context, req models.TransferRequest) (*models.SignedWallet, models.SigningContext, error) {
	signed, err := o.sessions.Open(ctx, req.SourceWalletID)
	if err != nil {
		return nil, nil, err
	}
	if req.SourceAddressID == "" {
		return signed, models.WalletLevel{WalletID: signed.ID}, nil
	}

	addresses, err := o.platform.ListAddresses(ctx, signed.ID)
	if err != nil {
		return nil, nil, err
	}
	for _, a := range addresses {
		if a.ID == req.SourceAddressID {
			return signed, models.AddressLevel{WalletID: signed.ID, AddressID: a.ID}, nil
		}
	}
	return nil, nil, errors.Wrapf(models.ErrAddressNotFound, "address %s in wallet %s", req.SourceAddressID, signed.ID)
}

// ValidateTransfer checks the request without touching the network.
func ValidateTransfer(req models.TransferRequest) (models.ValidTransfer, error) {
	if strings.TrimSpace(req.SourceWalletID) == "" {
		return models.ValidTransfer{}, &models.ValidationError{Field: "sourceWalletId", Reason: "is required"}
	}
	dest := strings.TrimSpace(req.DestinationAddress)
	if dest == "" {
		return models.ValidTransfer{}, &models.ValidationError{Field: "destinationAddress", Reason: "is required"}
	}

	raw := strings.TrimSpace(req.Amount)
	if raw == "" {
		return models.ValidTransfer{}, &models.ValidationError{Field: "amount", Reason: "is required"}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return models.ValidTransfer{}, &models.ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if !amount.IsPositive() {
		return models.ValidTransfer{}, &models.ValidationError{Field: "amount", Reason: "must be a positive number"}
	}

	asset := strings.TrimSpace(req.AssetID)
	if asset == "" {
		return models.ValidTransfer{}, &models.ValidationError{Field: "assetId", Reason: "is required"}
	}

	return models.ValidTransfer{Destination: dest, Amount: amount, AssetID: asset}, nil
}

// submissionError keeps kinds the platform adapter already assigned and tags
// anything else as a submission failure.
func submissionError(err error) error {
	for _, kind := range []error{models.ErrInsufficientFunds, models.ErrSubmission, models.ErrAddressNotFound} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return errors.Wrap(models.ErrSubmission, err.Error())
}

func failed(err error) (models.TransferOutcome, error) {
	return models.TransferOutcome{Status: models.TransferFailed, FailureReason: err}, err
}
