package platform

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const tokenTTL = 2 * time.Minute

// tokenSigner mints the short lived ES256 bearer token the platform expects on
// every request. The token is bound to one method and path.
type tokenSigner struct {
	keyName string
	key     *ecdsa.PrivateKey
	now     func() time.Time
}

func newTokenSigner(keyName, keySecret string) (*tokenSigner, error) {
	if keyName == "" || keySecret == "" {
		return nil, nil
	}
	pemKey := strings.ReplaceAll(keySecret, `\n`, "\n")
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, errors.Wrap(err, "parse platform api key")
	}
	return &tokenSigner{keyName: keyName, key: key, now: time.Now}, nil
}

func (s *tokenSigner) token(method, host, path string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "generate token nonce")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub": s.keyName,
		"iss": "cdp",
		"nbf": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
		"uri": method + " " + host + path,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	tok.Header["kid"] = s.keyName
	tok.Header["nonce"] = hex.EncodeToString(nonce)

	signed, err := tok.SignedString(s.key)
	return signed, errors.Wrap(err, "sign platform token")
}
