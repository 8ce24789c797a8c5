package models

import "strings"

// Wallet is the unsigned metadata of a platform wallet.
type Wallet struct {
	ID               string `json:"id"`
	NetworkID        string `json:"network_id"`
	DefaultAddressID string `json:"default_address_id"`
}

// SignedWallet is a wallet handle that carries its seed. It must not outlive
// the request that opened it.
type SignedWallet struct {
	Wallet
	Seed Seed `json:"-"`
}

type Address struct {
	ID        string `json:"address_id"`
	WalletID  string `json:"wallet_id"`
	NetworkID string `json:"network_id"`
	PublicKey string `json:"public_key"`
	Index     int    `json:"index"`
}

// NewWallet is returned once, at creation time. The seed is handed to the vault
// and dropped.
type NewWallet struct {
	Wallet
	Seed Seed
}

type WalletSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NetworkID   string `json:"network_id"`
	NetworkName string `json:"network"`
}

type WalletResponse struct {
	ID             string            `json:"id"`
	Network        string            `json:"network"`
	Addresses      []string          `json:"addresses"`
	DefaultAddress *string           `json:"defaultAddress"`
	Balances       map[string]string `json:"balances"`
}

type AddressResponse struct {
	ID       string            `json:"id"`
	Network  string            `json:"network"`
	Address  string            `json:"address"`
	WalletID string            `json:"walletId"`
	Balances map[string]string `json:"balances"`
}

type CreateWalletInput struct {
	NetworkID string `json:"network_id" binding:"required"`
}

type FaucetInput struct {
	AssetID string `json:"asset_id"`
}

type FaucetResult struct {
	TransactionHash string `json:"transaction_hash"`
	TransactionLink string `json:"transaction_link"`
}

// FormatNetworkID turns "base-sepolia" into "Base Sepolia".
func FormatNetworkID(networkID string) string {
	parts := strings.Split(networkID, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// IsMainnet reports whether the network id names a production network.
func IsMainnet(networkID string) bool {
	return strings.HasSuffix(networkID, "-mainnet")
}
