package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomUpperCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code := RandomUpperCode(8)
		assert.Len(t, code, 8)
		assert.True(t, IsAlphanumeric(code))
		seen[code] = struct{}{}
	}
	// 50 draws from a 36^8 space should not collide
	assert.Len(t, seen, 50)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 00:00:00", FormatTimestamp(ts))
}

func TestIsAlphanumeric(t *testing.T) {
	assert.True(t, IsAlphanumeric("AB12cd34"))
	assert.False(t, IsAlphanumeric(""))
	assert.False(t, IsAlphanumeric("AB-12"))
	assert.False(t, IsAlphanumeric("with space"))
}

func TestIsAlphanumericPlus(t *testing.T) {
	assert.True(t, IsAlphanumericPlus("dana_k"))
	assert.True(t, IsAlphanumericPlus("dana.k-2"))
	assert.False(t, IsAlphanumericPlus("dana k"))
	assert.False(t, IsAlphanumericPlus(""))
}
