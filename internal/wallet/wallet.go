package wallet

import (
	"crypto/ecdsa"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"custody_wallet_back/models"
)

// AddressKey is the public side of one derived wallet address.
type AddressKey struct {
	Index     int
	Address   string
	PublicKey string
}

// NewSeed mints the secret of a new wallet.
func NewSeed() (models.Seed, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", errors.Wrap(err, "generate seed")
	}
	raw := crypto.FromECDSA(privateKey)
	defer clear(raw)

	return models.Seed(hex.EncodeToString(raw)), nil
}

// DeriveKey returns the private key of address index within the seed's wallet:
// keccak256(seed || uint32be(index)).
func DeriveKey(seed models.Seed, index int) (*ecdsa.PrivateKey, error) {
	seedBytes, err := hex.DecodeString(seed.Reveal())
	if err != nil || len(seedBytes) == 0 {
		return nil, errors.Wrap(models.ErrSeedMismatch, "seed is not hex")
	}
	defer clear(seedBytes)

	buf := make([]byte, len(seedBytes)+4)
	copy(buf, seedBytes)
	binary.BigEndian.PutUint32(buf[len(seedBytes):], uint32(index))
	defer clear(buf)

	privKey, err := crypto.ToECDSA(crypto.Keccak256(buf))
	if err != nil {
		return nil, errors.Wrapf(err, "derive key %d", index)
	}
	return privKey, nil
}

// DeriveAddress returns the address and compressed public key of address index.
func DeriveAddress(seed models.Seed, index int) (AddressKey, error) {
	privKey, err := DeriveKey(seed, index)
	if err != nil {
		return AddressKey{}, err
	}

	return AddressKey{
		Index:     index,
		Address:   crypto.PubkeyToAddress(privKey.PublicKey).Hex(),
		PublicKey: hex.EncodeToString(crypto.CompressPubkey(&privKey.PublicKey)),
	}, nil
}

// VerifyAddress checks that the seed derives addressID at index.
func VerifyAddress(seed models.Seed, index int, addressID string) error {
	key, err := DeriveAddress(seed, index)
	if err != nil {
		return err
	}
	if !strings.EqualFold(key.Address, addressID) {
		return errors.Wrapf(models.ErrSeedMismatch, "address %d is %s", index, addressID)
	}
	return nil
}
