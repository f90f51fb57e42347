package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestProdWritesJSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter("prod", &buf)
	require.NoError(t, err)

	l.With("cmd", "build").Error("render failed", "path", "out/index.html")
	l.Debug("dropped below info")
	l.Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "render failed", entry["msg"])
	assert.Equal(t, "build", entry["cmd"])
	assert.Equal(t, "out/index.html", entry["path"])
}

func TestDevIncludesDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter("dev", &buf)
	require.NoError(t, err)
	l.Debug("asset copied", "src", "/a.jpg")
	l.Warn("asset missing")
	assert.Contains(t, buf.String(), "asset copied")
	assert.Contains(t, buf.String(), "asset missing")
}

func TestNewWithWriterRejectsNil(t *testing.T) {
	_, err := NewWithWriter("dev", nil)
	assert.Error(t, err)
}
