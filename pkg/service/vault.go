package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"custody_wallet_back/internal/seedcipher"
	"custody_wallet_back/models"
	"custody_wallet_back/pkg/repository"
)

// SeedVault is the only writer of seed records. Records are insert-only.
type SeedVault struct {
	repo repository.Seed
}

func NewSeedVault(repo repository.Seed) *SeedVault {
	return &SeedVault{repo: repo}
}

// Store encrypts seed and inserts it. A second Store for the same wallet fails
// with models.ErrDuplicateWallet and the first record stays.
func (v *SeedVault) Store(ctx context.Context, walletID string, seed models.Seed, key []byte) error {
	blob, err := seedcipher.Encrypt(seed.Reveal(), key)
	if err != nil {
		return err
	}
	if err := v.repo.InsertIfAbsent(ctx, walletID, blob); err != nil {
		return err
	}
	logrus.WithField("wallet_id", walletID).Info("seed stored")
	return nil
}

func (v *SeedVault) Retrieve(ctx context.Context, walletID string, key []byte) (models.Seed, error) {
	record, err := v.repo.SelectByKey(ctx, walletID)
	if err != nil {
		return "", err
	}
	plain, err := seedcipher.Decrypt(record.EncryptedSeed, key)
	if err != nil {
		return "", errors.Wrapf(err, "wallet %s", walletID)
	}
	return models.Seed(plain), nil
}
