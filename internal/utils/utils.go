// Package utils provides small helpers shared across the project:
// random code generation, timestamp formatting and input validation.
package utils

import (
	"crypto/rand"
	"math/big"
	"time"
	"unicode"
)

// TimestampFormat is the human-facing timestamp layout used in exports
// and dashboards.
const TimestampFormat = "2006-01-02 15:04:05"

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomUpperCode returns a random uppercase alphanumeric string of
// length n, suitable for human-shareable codes.
func RandomUpperCode(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		out[i] = codeCharset[idx.Int64()]
	}

	return string(out)
}

// FormatTimestamp renders t in the project's standard layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// CurrentTime returns the current UTC time truncated to the second.
func CurrentTime() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// IsAlphanumeric reports whether s is non-empty and contains only
// letters and digits.
func IsAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// IsAlphanumericPlus is IsAlphanumeric extended with a small set of
// characters allowed in usernames.
func IsAlphanumericPlus(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}

	return true
}
