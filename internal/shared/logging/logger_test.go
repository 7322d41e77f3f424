package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	logger := New(Options{Env: "production", LogFile: path})
	logger.Info("hello file")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"hello file"`)
}

func TestNew_DevelopmentEnablesDebug(t *testing.T) {
	logger := New(Options{Env: "development"})
	assert.NotNil(t, logger.Check(zapcore.DebugLevel, "debug"))
}
