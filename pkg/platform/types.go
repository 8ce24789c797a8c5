package platform

import (
	"fmt"

	"custody_wallet_back/models"
)

type apiWallet struct {
	ID             string      `json:"id"`
	NetworkID      string      `json:"network_id"`
	DefaultAddress *apiAddress `json:"default_address,omitempty"`
}

func (w apiWallet) model() models.Wallet {
	out := models.Wallet{ID: w.ID, NetworkID: w.NetworkID}
	if w.DefaultAddress != nil {
		out.DefaultAddressID = w.DefaultAddress.AddressID
	}
	return out
}

type apiAddress struct {
	WalletID  string `json:"wallet_id"`
	NetworkID string `json:"network_id"`
	PublicKey string `json:"public_key"`
	AddressID string `json:"address_id"`
	Index     int    `json:"index"`
}

func (a apiAddress) model() models.Address {
	return models.Address{
		ID:        a.AddressID,
		WalletID:  a.WalletID,
		NetworkID: a.NetworkID,
		PublicKey: a.PublicKey,
		Index:     a.Index,
	}
}

type apiList[T any] struct {
	Data     []T    `json:"data"`
	HasMore  bool   `json:"has_more"`
	NextPage string `json:"next_page"`
}

type apiAsset struct {
	NetworkID string `json:"network_id"`
	AssetID   string `json:"asset_id"`
	Decimals  int32  `json:"decimals"`
}

type apiBalance struct {
	Amount string   `json:"amount"`
	Asset  apiAsset `json:"asset"`
}

type apiTransfer struct {
	TransferID      string `json:"transfer_id"`
	WalletID        string `json:"wallet_id"`
	AddressID       string `json:"address_id"`
	Status          string `json:"status"`
	TransactionHash string `json:"transaction_hash"`
	TransactionLink string `json:"transaction_link"`
}

type apiFaucet struct {
	TransactionHash string `json:"transaction_hash"`
	TransactionLink string `json:"transaction_link"`
}

type createWalletBody struct {
	Wallet struct {
		NetworkID       string `json:"network_id"`
		UseServerSigner bool   `json:"use_server_signer"`
	} `json:"wallet"`
}

type createAddressBody struct {
	PublicKey    string `json:"public_key"`
	AddressIndex int    `json:"address_index"`
}

type createTransferBody struct {
	Amount      string `json:"amount"`
	NetworkID   string `json:"network_id"`
	AssetID     string `json:"asset_id"`
	Destination string `json:"destination"`
}

// APIError is a non-2xx platform response.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("platform: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("platform: %s: %s", e.Code, e.Message)
}
