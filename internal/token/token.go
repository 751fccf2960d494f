// Package token handles the optional shared secret that gates POST requests
// to the bridge.
package token //nolint:revive // intentional: does not conflict at import path level

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
)

// TokenBytes is the number of random bytes in a generated secret.
const TokenBytes = 32

// DefaultEnvVar is the environment variable the bridge reads its shared
// secret from unless config overrides the name.
const DefaultEnvVar = "TAGUI_BRIDGE_TOKEN" //nolint:gosec // G101: env var name, not a credential

// Generate creates a new random secret: 32 bytes as 64 lowercase hex chars.
func Generate() string {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// ErrBlankSecret is returned by FromEnv when the variable is set but holds
// only whitespace.
var ErrBlankSecret = errors.New("secret is blank")

// FromEnv returns the secret stored in the named environment variable with
// surrounding whitespace removed. An unset or empty variable means open mode
// and returns "". A variable holding only whitespace is an error rather than
// a silent switch to open mode.
func FromEnv(name string) (string, error) {
	raw := os.Getenv(name)
	secret := strings.TrimSpace(raw)
	if secret == "" && raw != "" {
		return "", fmt.Errorf("%s: %w", name, ErrBlankSecret)
	}
	return secret, nil
}

// Header returns the Authorization header value for secret.
func Header(secret string) string {
	return "Bearer " + secret
}
