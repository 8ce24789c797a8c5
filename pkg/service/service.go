package service

import (
	"context"

	"custody_wallet_back/models"
	"custody_wallet_back/pkg/cache"
	"custody_wallet_back/pkg/notify"
	"custody_wallet_back/pkg/repository"
)

// Platform is the remote wallet platform capability.
type Platform interface {
	CreateWallet(ctx context.Context, networkID string) (models.NewWallet, error)
	FetchWallet(ctx context.Context, walletID string) (models.Wallet, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	ListAddresses(ctx context.Context, walletID string) ([]models.Address, error)
	ListWalletBalances(ctx context.Context, walletID string) (models.Balances, error)
	ListAddressBalances(ctx context.Context, walletID, addressID string) (models.Balances, error)
	AttachSeed(ctx context.Context, w models.Wallet, seed models.Seed) (*models.SignedWallet, error)
	CreateTransfer(ctx context.Context, signed *models.SignedWallet, from models.SigningContext, t models.ValidTransfer) (models.TransferTicket, error)
	AwaitTransfer(ctx context.Context, ticket models.TransferTicket) (models.TransferState, error)
	RequestFaucetFunds(ctx context.Context, walletID, addressID, assetID string) (models.FaucetResult, error)
}

type Wallet interface {
	CreateWallet(ctx context.Context, networkID string) (models.Wallet, error)
	ListWallets(ctx context.Context) ([]models.WalletSummary, error)
	GetWallet(ctx context.Context, walletID string) (models.WalletResponse, error)
	GetAddress(ctx context.Context, walletID, addressID string) (models.AddressResponse, error)
	RequestFaucet(ctx context.Context, walletID, addressID, assetID string) (models.FaucetResult, error)
	MainnetDisabled() bool
}

type Transfer interface {
	CreateTransfer(ctx context.Context, req models.TransferRequest) (models.TransferOutcome, error)
}

type Config struct {
	// SeedKey is the process-wide seed encryption key, fixed at start-up.
	SeedKey         []byte
	MainnetDisabled bool
}

type Service struct {
	Wallet
	Transfer
}

func NewService(repos *repository.Repository, platform Platform, cfg Config, c cache.Cache, n notify.Notifier) *Service {
	vault := NewSeedVault(repos.Seed)
	sessions := NewWalletSession(platform, vault, cfg.SeedKey)
	orchestrator := NewTransferOrchestrator(platform, sessions)

	return &Service{
		Wallet:   NewWalletService(platform, vault, cfg, c),
		Transfer: NewTransferService(orchestrator, c, n),
	}
}
