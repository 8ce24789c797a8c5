package models

import "fmt"

// Seed is the plaintext secret that authorizes signing for a wallet.
// It never prints its value; use Reveal to get the raw string.
type Seed string

func (s Seed) Reveal() string { return string(s) }

func (Seed) String() string { return "[REDACTED]" }

func (Seed) GoString() string { return "[REDACTED]" }

func (s Seed) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(s.String()))
}

// SeedRecord is one row of the wallets table.
type SeedRecord struct {
	ID            int64  `db:"id"`
	WalletID      string `db:"wallet_id"`
	EncryptedSeed string `db:"encrypted_seed"`
}
