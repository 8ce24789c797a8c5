package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"custody_wallet_back/models"
)

const uniqueViolation = "23505"

type SeedPostgres struct {
	db *sqlx.DB
}

func NewSeedPostgres(db *sqlx.DB) *SeedPostgres {
	return &SeedPostgres{db: db}
}

// InsertIfAbsent writes a new record. An existing wallet_id yields
// models.ErrDuplicateWallet and leaves the stored row untouched.
func (r *SeedPostgres) InsertIfAbsent(ctx context.Context, walletID, encryptedSeed string) error {
	query := `
        INSERT INTO wallets (wallet_id, encrypted_seed)
        VALUES ($1, $2)
        ON CONFLICT (wallet_id) DO NOTHING
        RETURNING id
    `
	var id int64
	err := r.db.QueryRowxContext(ctx, query, walletID, encryptedSeed).Scan(&id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return errors.Wrapf(models.ErrDuplicateWallet, "wallet %s", walletID)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errors.Wrapf(models.ErrDuplicateWallet, "wallet %s", walletID)
	}
	return errors.Wrapf(models.ErrStorage, "insert seed for wallet %s: %v", walletID, err)
}

func (r *SeedPostgres) SelectByKey(ctx context.Context, walletID string) (models.SeedRecord, error) {
	var record models.SeedRecord
	query := `SELECT id, wallet_id, encrypted_seed FROM wallets WHERE wallet_id = $1`
	err := r.db.GetContext(ctx, &record, query, walletID)
	if errors.Is(err, sql.ErrNoRows) {
		return record, errors.Wrapf(models.ErrNotFound, "wallet %s", walletID)
	}
	if err != nil {
		return record, errors.Wrapf(models.ErrStorage, "select seed for wallet %s: %v", walletID, err)
	}
	return record, nil
}
