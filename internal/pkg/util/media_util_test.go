package util

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSafeContentType(t *testing.T) {
	t.Run("png magic bytes", func(t *testing.T) {
		reader := bytes.NewReader([]byte("\x89PNG\r\n\x1a\n00000000"))
		ct, err := GetSafeContentType(reader)
		require.NoError(t, err)
		assert.Equal(t, "image/png", ct)

		pos, err := reader.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		assert.Zero(t, pos, "嗅探后读取位置应还原")
	})

	t.Run("plain text", func(t *testing.T) {
		ct, err := GetSafeContentType(strings.NewReader("hello world"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ct, "text/plain"))
	})

	t.Run("empty file", func(t *testing.T) {
		ct, err := GetSafeContentType(bytes.NewReader(nil))
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", ct)
	})
}
