package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// PKCEPair holds the verifier kept locally and the S256 challenge sent with
// the authorization request.
type PKCEPair struct {
	Verifier  string
	Challenge string
}

// NewPKCEPair generates a fresh verifier and its challenge.
func NewPKCEPair() (PKCEPair, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return PKCEPair{}, err
	}
	return PairFromVerifier(base64.RawURLEncoding.EncodeToString(buf)), nil
}

// PairFromVerifier rebuilds the pair for a verifier restored from storage.
func PairFromVerifier(verifier string) PKCEPair {
	hash := sha256.Sum256([]byte(verifier))
	return PKCEPair{
		Verifier:  verifier,
		Challenge: base64.RawURLEncoding.EncodeToString(hash[:]),
	}
}

// GenerateState returns a random state string for CSRF protection of the
// authorization redirect.
func GenerateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
