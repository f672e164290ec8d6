package logging

import (
	"os"
	"path/filepath"
	"testing"

	"rental-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_WritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := Init(&config.Config{LogMode: "production", LogFile: path})
	require.NoError(t, err)
	defer zap.ReplaceGlobals(zap.NewNop())

	zap.S().Infow("test kaydı", "key", "value")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestInit_Development(t *testing.T) {
	logger, err := Init(&config.Config{LogMode: "development"})
	require.NoError(t, err)
	defer zap.ReplaceGlobals(zap.NewNop())
	assert.Same(t, logger, zap.L())
}
