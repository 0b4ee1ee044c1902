package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
)

const bookingNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EnvOrDefault returns the ENV value or a fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GenerateBookingNumber produces a code like "BK-7F3K9Q2D". Uses crypto/rand
// with rand.Int to avoid modulo bias. Uniqueness is enforced by the DB index;
// callers retry on collision.
func GenerateBookingNumber() (string, error) {
	code, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return "BK-" + code, nil
}

func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(bookingNumberCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(bookingNumberCharset[num.Int64()])
	}
	return sb.String(), nil
}
