package models

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateWallet   = errors.New("seed record already exists for wallet")
	ErrNotFound          = errors.New("seed record not found")
	ErrStorage           = errors.New("seed storage failure")
	ErrInvalidKey        = errors.New("invalid encryption key")
	ErrDecryption        = errors.New("seed decryption failed")
	ErrSeedMismatch      = errors.New("seed does not match wallet")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrAddressNotFound   = errors.New("address not found")
	ErrSubmission        = errors.New("transfer rejected by platform")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferFailed    = errors.New("transfer did not complete")
	ErrOutcomeUnknown    = errors.New("transfer outcome unknown")
	ErrPlatform          = errors.New("platform request failed")
	ErrMainnetDisabled   = errors.New("mainnet is disabled")
)

// ValidationError names the request field that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
