// Package secrets produces opaque random tokens for secret-valued
// configuration keys.
package secrets

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/sprout-cli/sprout/pkg/errors"
)

// TokenBytes is the number of random bytes per generated token.
// Hex encoding doubles this on the wire.
const TokenBytes = 32

// Generator produces one independent token per call
type Generator interface {
	Generate() (string, error)
}

// HexGenerator draws from crypto/rand and hex-encodes the result
type HexGenerator struct{}

// NewGenerator returns the default crypto-strength generator
func NewGenerator() *HexGenerator {
	return &HexGenerator{}
}

// Generate returns a fresh 64-character hex token
func (g *HexGenerator) Generate() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read random bytes")
	}
	return hex.EncodeToString(buf), nil
}
