package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custody_wallet_back/models"
)

func TestVaultStoreRetrieve(t *testing.T) {
	ctx := context.Background()
	store := newMemorySeedStore()
	vault := NewSeedVault(store)
	key := newKey(t)

	require.NoError(t, vault.Store(ctx, "W1", "my seed", key))
	assert.NotContains(t, store.records["W1"], "my seed")

	seed, err := vault.Retrieve(ctx, "W1", key)
	require.NoError(t, err)
	assert.Equal(t, "my seed", seed.Reveal())
}

func TestVaultStoreIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	vault := NewSeedVault(newMemorySeedStore())
	key := newKey(t)

	require.NoError(t, vault.Store(ctx, "W1", "first", key))
	err := vault.Store(ctx, "W1", "second", key)
	require.ErrorIs(t, err, models.ErrDuplicateWallet)

	seed, err := vault.Retrieve(ctx, "W1", key)
	require.NoError(t, err)
	assert.Equal(t, "first", seed.Reveal())
}

func TestVaultConcurrentStoreSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := newMemorySeedStore()
	vault := NewSeedVault(store)
	key := newKey(t)

	const callers = 32
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = vault.Store(ctx, "W-new", models.Seed("seed"), key)
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, models.ErrDuplicateWallet):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, dup)
	assert.Equal(t, 1, store.count())
}

func TestVaultRetrieveUnknownWallet(t *testing.T) {
	store := newMemorySeedStore()
	vault := NewSeedVault(store)

	_, err := vault.Retrieve(context.Background(), "unknown-wallet", newKey(t))
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 0, store.count())
}

func TestVaultRetrieveWrongKey(t *testing.T) {
	ctx := context.Background()
	vault := NewSeedVault(newMemorySeedStore())
	require.NoError(t, vault.Store(ctx, "W1", "seed", newKey(t)))

	_, err := vault.Retrieve(ctx, "W1", newKey(t))
	require.ErrorIs(t, err, models.ErrDecryption)
}

func TestVaultStoreInvalidKey(t *testing.T) {
	store := newMemorySeedStore()
	vault := NewSeedVault(store)

	err := vault.Store(context.Background(), "W1", "seed", []byte("short"))
	require.ErrorIs(t, err, models.ErrInvalidKey)
	assert.Equal(t, 0, store.count())
}

func TestVaultStorageFault(t *testing.T) {
	store := newMemorySeedStore()
	store.fault = errUpstream
	vault := NewSeedVault(store)

	err := vault.Store(context.Background(), "W1", "seed", newKey(t))
	require.ErrorIs(t, err, models.ErrStorage)

	_, err = vault.Retrieve(context.Background(), "W1", newKey(t))
	require.ErrorIs(t, err, models.ErrStorage)
}
