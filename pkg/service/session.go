package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"custody_wallet_back/models"
)

// WalletSession rehydrates signing handles. Handles are built per call and
// never cached.
type WalletSession struct {
	platform Platform
	vault    *SeedVault
	key      []byte
}

func NewWalletSession(platform Platform, vault *SeedVault, key []byte) *WalletSession {
	return &WalletSession{platform: platform, vault: vault, key: key}
}

// Open fetches the wallet, decrypts its seed and attaches it. Errors keep the
// kind reported by the platform or the vault.
func (s *WalletSession) Open(ctx context.Context, walletID string) (*models.SignedWallet, error) {
	w, err := s.platform.FetchWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}

	seed, err := s.vault.Retrieve(ctx, w.ID, s.key)
	if err != nil {
		return nil, err
	}

	signed, err := s.platform.AttachSeed(ctx, w, seed)
	if err != nil {
		return nil, err
	}

	logrus.WithField("wallet_id", w.ID).Debug("wallet session opened")
	return signed, nil
}
