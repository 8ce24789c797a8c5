package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"custody_wallet_back/internal/seedcipher"
	"custody_wallet_back/models"
	"custody_wallet_back/pkg/platform"
)

// memorySeedStore enforces wallet_id uniqueness under its own lock, the way the
// database constraint does.
type memorySeedStore struct {
	mu      sync.Mutex
	records map[string]string
	fault   error
}

func newMemorySeedStore() *memorySeedStore {
	return &memorySeedStore{records: map[string]string{}}
}

func (m *memorySeedStore) InsertIfAbsent(_ context.Context, walletID, encryptedSeed string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return pkgerrors.Wrap(models.ErrStorage, m.fault.Error())
	}
	if _, ok := m.records[walletID]; ok {
		return pkgerrors.Wrapf(models.ErrDuplicateWallet, "wallet %s", walletID)
	}
	m.records[walletID] = encryptedSeed
	return nil
}

func (m *memorySeedStore) SelectByKey(_ context.Context, walletID string) (models.SeedRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fault != nil {
		return models.SeedRecord{}, pkgerrors.Wrap(models.ErrStorage, m.fault.Error())
	}
	blob, ok := m.records[walletID]
	if !ok {
		return models.SeedRecord{}, pkgerrors.Wrapf(models.ErrNotFound, "wallet %s", walletID)
	}
	return models.SeedRecord{WalletID: walletID, EncryptedSeed: blob}, nil
}

func (m *memorySeedStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// fakePlatform records calls and returns canned results.
type fakePlatform struct {
	mu sync.Mutex

	wallets   map[string]models.Wallet
	seeds     map[string]models.Seed
	addresses map[string][]models.Address
	balances  models.Balances

	transferErr  error
	awaitState   models.TransferState
	awaitErr     error
	faucetResult models.FaucetResult

	fetchCalls    int
	transferCalls int
	lastFrom      models.SigningContext
	lastTransfer  models.ValidTransfer
	faucetCalls   int
	listCalls     int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		wallets:    map[string]models.Wallet{},
		seeds:      map[string]models.Seed{},
		addresses:  map[string][]models.Address{},
		balances:   models.Balances{"eth": decimal.RequireFromString("2")},
		awaitState: models.TransferState{Status: "complete", TransactionLink: "https://sepolia.basescan.org/tx/0x01"},
		faucetResult: models.FaucetResult{
			TransactionHash: "0xfaucet",
			TransactionLink: "https://sepolia.basescan.org/tx/0xfaucet",
		},
	}
}

func (f *fakePlatform) addWallet(id, network string, seed models.Seed, addressIDs ...string) models.Wallet {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := models.Wallet{ID: id, NetworkID: network}
	for i, a := range addressIDs {
		if i == 0 {
			w.DefaultAddressID = a
		}
		f.addresses[id] = append(f.addresses[id], models.Address{ID: a, WalletID: id, NetworkID: network, Index: i})
	}
	f.wallets[id] = w
	f.seeds[id] = seed
	return w
}

func (f *fakePlatform) CreateWallet(_ context.Context, networkID string) (models.NewWallet, error) {
	f.mu.Lock()
	id := fmt.Sprintf("wallet-%d", len(f.wallets)+1)
	f.mu.Unlock()
	seed := models.Seed("seed-of-" + id)
	w := f.addWallet(id, networkID, seed, "0xdefault-"+id)
	return models.NewWallet{Wallet: w, Seed: seed}, nil
}

func (f *fakePlatform) FetchWallet(_ context.Context, walletID string) (models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	w, ok := f.wallets[walletID]
	if !ok {
		return models.Wallet{}, pkgerrors.Wrapf(models.ErrWalletNotFound, "wallet %s", walletID)
	}
	return w, nil
}

func (f *fakePlatform) ListWallets(context.Context) ([]models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.Wallet, 0, len(f.wallets))
	for _, w := range f.wallets {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakePlatform) ListAddresses(_ context.Context, walletID string) ([]models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wallets[walletID]; !ok {
		return nil, pkgerrors.Wrapf(models.ErrWalletNotFound, "wallet %s", walletID)
	}
	return append([]models.Address(nil), f.addresses[walletID]...), nil
}

func (f *fakePlatform) ListWalletBalances(context.Context, string) (models.Balances, error) {
	return f.balances, nil
}

func (f *fakePlatform) ListAddressBalances(context.Context, string, string) (models.Balances, error) {
	return f.balances, nil
}

func (f *fakePlatform) AttachSeed(_ context.Context, w models.Wallet, seed models.Seed) (*models.SignedWallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seeds[w.ID] != seed {
		return nil, pkgerrors.Wrapf(models.ErrSeedMismatch, "wallet %s", w.ID)
	}
	return &models.SignedWallet{Wallet: w, Seed: seed}, nil
}

func (f *fakePlatform) CreateTransfer(_ context.Context, signed *models.SignedWallet, from models.SigningContext, t models.ValidTransfer) (models.TransferTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transferCalls++
	f.lastFrom = from
	f.lastTransfer = t
	if errors.Is(f.transferErr, models.ErrOutcomeUnknown) {
		return models.TransferTicket{}, f.transferErr
	}
	if f.transferErr != nil {
		// the real client classifies at this boundary
		return models.TransferTicket{}, platform.ClassifySubmissionError(f.transferErr)
	}
	addressID := signed.DefaultAddressID
	if a, ok := from.(models.AddressLevel); ok {
		addressID = a.AddressID
	}
	return models.TransferTicket{TransferID: "transfer-1", WalletID: signed.ID, AddressID: addressID}, nil
}

func (f *fakePlatform) AwaitTransfer(context.Context, models.TransferTicket) (models.TransferState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.awaitState, f.awaitErr
}

func (f *fakePlatform) RequestFaucetFunds(context.Context, string, string, string) (models.FaucetResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faucetCalls++
	return f.faucetResult, nil
}

func (f *fakePlatform) transfers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transferCalls
}

func newKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, seedcipher.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

var errUpstream = errors.New("upstream")
