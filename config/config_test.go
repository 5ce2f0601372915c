package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Load_Overrides(t *testing.T) {
	path := writeConfig(t, `
log: tools.log
watch_debounce_ms: 250
extract:
  input: plan.pdf
  strategies: [rsc, ledongthuc]
crop:
  backup: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tools.log", cfg.LogFile)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce())
	assert.Equal(t, "plan.pdf", cfg.Extract.Input)
	assert.Equal(t, "_extract_pdf_text.txt", cfg.Extract.Output)
	assert.Equal(t, []string{"rsc", "ledongthuc"}, cfg.Extract.Strategies)
	assert.Equal(t, "apps/mobile/src/assets/ui/paw.png", cfg.Crop.Input)
	assert.True(t, cfg.Crop.Backup)
	assert.Equal(t, "localhost:8090", cfg.ServerAddr)
}

func Test_Load_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "unable to open config file")

	_, err = Load(writeConfig(t, "extract: [not, a, map]"))
	assert.ErrorContains(t, err, "unable to parse config file")

	_, err = Load(writeConfig(t, "watch_debounce_ms: -1"))
	assert.Error(t, err)
}

func Test_Load_DefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultPath, []byte("server_addr: 0.0.0.0:9000\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddr)
}

func Test_NewLogger(t *testing.T) {
	cfg := Default()
	log, closer, err := cfg.NewLogger()
	require.NoError(t, err)
	require.NotNil(t, log)
	require.NoError(t, closer.Close())

	cfg.LogFile = filepath.Join(t.TempDir(), "tools.log")
	log, closer, err = cfg.NewLogger()
	require.NoError(t, err)
	log.Info("hello", "k", "v")
	require.NoError(t, closer.Close())

	buf, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"msg":"hello"`)
}
