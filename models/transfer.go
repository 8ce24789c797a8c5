package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferPending  TransferStatus = "pending"
	TransferComplete TransferStatus = "complete"
	TransferFailed   TransferStatus = "failed"
)

// TransferInput is the request body of both transfer routes.
type TransferInput struct {
	DestinationAddress string     `json:"destination_address"`
	Amount             FlexAmount `json:"amount"`
	Asset              string     `json:"asset"`
}

// FlexAmount accepts a JSON string or number and keeps its literal text.
type FlexAmount string

func (a *FlexAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = FlexAmount(str)
		return nil
	}
	*a = FlexAmount(s)
	return nil
}

// TransferRequest lives for one orchestrator run.
type TransferRequest struct {
	SourceWalletID     string
	SourceAddressID    string // empty means the wallet's default address
	DestinationAddress string
	Amount             string
	AssetID            string
}

// ValidTransfer is a TransferRequest that passed validation.
type ValidTransfer struct {
	Destination string
	Amount      decimal.Decimal
	AssetID     string
}

// SigningContext selects what a transfer is sent from: WalletLevel or AddressLevel.
type SigningContext interface {
	Wallet() string
	isSigningContext()
}

type WalletLevel struct {
	WalletID string
}

func (w WalletLevel) Wallet() string  { return w.WalletID }
func (WalletLevel) isSigningContext() {}

type AddressLevel struct {
	WalletID  string
	AddressID string
}

func (a AddressLevel) Wallet() string  { return a.WalletID }
func (AddressLevel) isSigningContext() {}

// TransferTicket identifies a submitted transfer on the platform.
type TransferTicket struct {
	TransferID string `json:"transfer_id"`
	WalletID   string `json:"wallet_id"`
	AddressID  string `json:"address_id"`
}

// TransferState is what the platform reports about a transfer.
type TransferState struct {
	Status          string `json:"status"`
	TransactionHash string `json:"transaction_hash"`
	TransactionLink string `json:"transaction_link"`
}

type TransferOutcome struct {
	Status          TransferStatus `json:"status"`
	TransferID      string         `json:"transfer_id,omitempty"`
	AddressID       string         `json:"address_id,omitempty"` // address the transfer was sent from
	TransactionLink string         `json:"transaction_link,omitempty"`
	FailureReason   error          `json:"-"`
}
