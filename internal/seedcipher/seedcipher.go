// Package seedcipher encrypts wallet seeds for storage.
//
// A blob is base58(version || nonce || ciphertext) where the ciphertext is
// XChaCha20-Poly1305 sealed under a 256-bit key. Every Encrypt call draws a
// fresh random nonce, so the blob is all Decrypt needs besides the key.
package seedcipher

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"

	"custody_wallet_back/models"
)

const (
	KeySize = chacha20poly1305.KeySize

	blobVersion byte = 1
	nonceSize        = chacha20poly1305.NonceSizeX
)

// Encrypt seals plainSeed under key.
func Encrypt(plainSeed string, key []byte) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "generate nonce")
	}

	plaintext := []byte(plainSeed)
	defer clear(plaintext)

	out := make([]byte, 0, 1+nonceSize+len(plaintext)+aead.Overhead())
	out = append(out, blobVersion)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, plaintext, []byte{blobVersion})

	return base58.Encode(out), nil
}

// Decrypt opens a blob produced by Encrypt. A malformed blob, a tampered
// ciphertext and a wrong key all fail with models.ErrDecryption.
func Decrypt(blob string, key []byte) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	raw, err := base58.Decode(blob)
	if err != nil {
		return "", errors.Wrap(models.ErrDecryption, "blob is not base58")
	}
	if len(raw) < 1+nonceSize+aead.Overhead() {
		return "", errors.Wrap(models.ErrDecryption, "blob too short")
	}
	if raw[0] != blobVersion {
		return "", errors.Wrapf(models.ErrDecryption, "unknown blob version %d", raw[0])
	}

	nonce := raw[1 : 1+nonceSize]
	plaintext, err := aead.Open(nil, nonce, raw[1+nonceSize:], raw[:1])
	if err != nil {
		return "", errors.Wrap(models.ErrDecryption, "authentication failed")
	}
	defer clear(plaintext)

	return string(plaintext), nil
}

// ParseKey decodes a hex encoded key and checks its length.
func ParseKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(models.ErrInvalidKey, "key is not hex")
	}
	if len(key) != KeySize {
		return nil, errors.Wrapf(models.ErrInvalidKey, "key must be %d bytes, got %d", KeySize, len(key))
	}
	return key, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errors.Wrapf(models.ErrInvalidKey, "key must be %d bytes, got %d", KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errors.Wrap(models.ErrInvalidKey, err.Error())
	}
	return aead, nil
}
