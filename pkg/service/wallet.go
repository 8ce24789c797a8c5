package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"custody_wallet_back/models"
	"custody_wallet_back/pkg/cache"
)

const (
	walletListName = "My Wallet"
	readCacheTTL   = 30 * time.Second
)

type WalletService struct {
	platform Platform
	vault    *SeedVault
	cfg      Config
	cache    cache.Cache
}

func NewWalletService(platform Platform, vault *SeedVault, cfg Config, c cache.Cache) *WalletService {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	return &WalletService{platform: platform, vault: vault, cfg: cfg, cache: c}
}

func (s *WalletService) MainnetDisabled() bool {
	return s.cfg.MainnetDisabled
}

// CreateWallet mints a wallet on the platform and stores its seed. When the
// seed cannot be stored the remote wallet is left behind unusable; the error
// is returned so the caller never sees it as created.
func (s *WalletService) CreateWallet(ctx context.Context, networkID string) (models.Wallet, error) {
	if networkID == "" {
		return models.Wallet{}, &models.ValidationError{Field: "networkId", Reason: "is required"}
	}
	if s.cfg.MainnetDisabled && models.IsMainnet(networkID) {
		return models.Wallet{}, errors.Wrap(models.ErrMainnetDisabled, networkID)
	}

	created, err := s.platform.CreateWallet(ctx, networkID)
	if err != nil {
		return models.Wallet{}, err
	}
	if err := s.vault.Store(ctx, created.ID, created.Seed, s.cfg.SeedKey); err != nil {
		logrus.WithError(err).WithField("wallet_id", created.ID).Error("wallet created but seed not stored")
		return models.Wallet{}, err
	}

	if err := s.cache.Delete(ctx, walletsKey); err != nil {
		logrus.WithError(err).WithField("key", walletsKey).Debug("cache invalidation failed")
	}
	return created.Wallet, nil
}

func (s *WalletService) ListWallets(ctx context.Context) ([]models.WalletSummary, error) {
	var cached []models.WalletSummary
	if found, err := s.cache.Get(ctx, walletsKey, &cached); err == nil && found {
		return cached, nil
	}

	wallets, err := s.platform.ListWallets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.WalletSummary, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, models.WalletSummary{
			ID:          w.ID,
			Name:        walletListName,
			NetworkID:   w.NetworkID,
			NetworkName: models.FormatNetworkID(w.NetworkID),
		})
	}
	s.setCache(ctx, walletsKey, out)
	return out, nil
}

func (s *WalletService) GetWallet(ctx context.Context, walletID string) (models.WalletResponse, error) {
	var resp models.WalletResponse
	key := walletKey(walletID)
	if found, err := s.cache.Get(ctx, key, &resp); err == nil && found {
		return resp, nil
	}

	w, err := s.platform.FetchWallet(ctx, walletID)
	if err != nil {
		return resp, err
	}
	addresses, err := s.platform.ListAddresses(ctx, w.ID)
	if err != nil {
		return resp, err
	}
	balances, err := s.platform.ListWalletBalances(ctx, w.ID)
	if err != nil {
		return resp, err
	}

	resp = models.WalletResponse{
		ID:        w.ID,
		Network:   models.FormatNetworkID(w.NetworkID),
		Addresses: make([]string, 0, len(addresses)),
		Balances:  balances.Strings(),
	}
	for _, a := range addresses {
		resp.Addresses = append(resp.Addresses, a.ID)
	}
	if w.DefaultAddressID != "" {
		def := w.DefaultAddressID
		resp.DefaultAddress = &def
	}

	s.setCache(ctx, key, resp)
	return resp, nil
}

func (s *WalletService) GetAddress(ctx context.Context, walletID, addressID string) (models.AddressResponse, error) {
	var resp models.AddressResponse
	key := addressKey(walletID, addressID)
	if found, err := s.cache.Get(ctx, key, &resp); err == nil && found {
		return resp, nil
	}

	addr, err := s.findAddress(ctx, walletID, addressID)
	if err != nil {
		return resp, err
	}
	balances, err := s.platform.ListAddressBalances(ctx, walletID, addr.ID)
	if err != nil {
		return resp, err
	}

	resp = models.AddressResponse{
		ID:       addr.ID,
		Network:  models.FormatNetworkID(addr.NetworkID),
		Address:  addr.ID,
		WalletID: walletID,
		Balances: balances.Strings(),
	}
	s.setCache(ctx, key, resp)
	return resp, nil
}

// RequestFaucet asks the platform for test funds. Mainnet addresses are refused.
func (s *WalletService) RequestFaucet(ctx context.Context, walletID, addressID, assetID string) (models.FaucetResult, error) {
	addr, err := s.findAddress(ctx, walletID, addressID)
	if err != nil {
		return models.FaucetResult{}, err
	}
	if models.IsMainnet(addr.NetworkID) {
		return models.FaucetResult{}, errors.Wrapf(models.ErrMainnetDisabled, "no faucet on %s", addr.NetworkID)
	}

	res, err := s.platform.RequestFaucetFunds(ctx, walletID, addr.ID, assetID)
	if err != nil {
		return models.FaucetResult{}, err
	}
	logrus.WithFields(logrus.Fields{
		"wallet_id":  walletID,
		"address_id": addr.ID,
		"asset_id":   assetID,
	}).Info("faucet funds requested")

	invalidate(ctx, s.cache, walletID, addr.ID)
	return res, nil
}

func (s *WalletService) findAddress(ctx context.Context, walletID, addressID string) (models.Address, error) {
	addresses, err := s.platform.ListAddresses(ctx, walletID)
	if err != nil {
		return models.Address{}, err
	}
	for _, a := range addresses {
		if a.ID == addressID {
			return a, nil
		}
	}
	return models.Address{}, errors.Wrapf(models.ErrAddressNotFound, "address %s in wallet %s", addressID, walletID)
}

func (s *WalletService) setCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, readCacheTTL); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache set failed")
	}
}

const walletsKey = "wallets"

func walletKey(walletID string) string { return "wallet:" + walletID }

func addressKey(walletID, addressID string) string {
	return "address:" + walletID + ":" + addressID
}

// invalidate drops cached reads touched by a balance change.
func invalidate(ctx context.Context, c cache.Cache, walletID, addressID string) {
	if c == nil {
		return
	}
	keys := []string{walletKey(walletID)}
	if addressID != "" {
		keys = append(keys, addressKey(walletID, addressID))
	}
	if err := c.Delete(ctx, keys...); err != nil {
		logrus.WithError(err).WithField("wallet_id", walletID).Debug("cache invalidation failed")
	}
}
