package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"custody_wallet_back/models"
)

// Seed is the persistence capability behind the seed vault. Implementations
// enforce wallet_id uniqueness themselves.
type Seed interface {
	InsertIfAbsent(ctx context.Context, walletID, encryptedSeed string) error
	SelectByKey(ctx context.Context, walletID string) (models.SeedRecord, error)
}

type Repository struct {
	Seed
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Seed: NewSeedPostgres(db),
	}
}
