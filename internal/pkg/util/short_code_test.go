package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShortCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateShortCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(shortCodeAlphabet, r), "非法字符 %q", r)
		}
		seen[code] = true
	}
	// 62^6 的空间里 100 次全碰撞几乎不可能
	assert.Greater(t, len(seen), 90)
}

func TestGenerateShortCodeZeroLength(t *testing.T) {
	code, err := GenerateShortCode(0)
	require.NoError(t, err)
	assert.Empty(t, code)
}
