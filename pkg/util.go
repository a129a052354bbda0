package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"math"
	"strings"
)

// GenerateRandomBytes returns securely generated random bytes.
// It will return an error if the system's secure random
// number generator fails to function correctly, in which
// case the caller should not continue
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	// Note that err == nil only if we read len(b) bytes.
	if err != nil {
		return nil, err
	}

	return b, nil
}

// GenerateRandomString returns a URL-safe, base64 encoded
// securely generated random string.
func GenerateRandomString(s int) (string, error) {
	b, err := GenerateRandomBytes(s)
	return base64.URLEncoding.EncodeToString(b), err
}

// RoundToOneDecimal rounds a float to a single decimal place.
func RoundToOneDecimal(val float64) float64 {
	return math.Round(val*10) / 10
}

// BytesToString converts a byte slice to a trimmed string.
func BytesToString(b []byte) string {
	return strings.TrimSpace(string(b))
}
