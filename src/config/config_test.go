package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dashboard/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`service:
  port: "8000"
datasets:
  source: "CSV"
  csvDir: "./data"
logging:
  level: "info"
  logToFile: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appsettings.yaml"), content, 0o644))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Service.Port)
	assert.Equal(t, config.CSV, cfg.Datasets.Source)
	assert.Equal(t, "./data", cfg.Datasets.CSVDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.LogToFile)
}
