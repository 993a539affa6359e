package novaclick

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: "127.0.0.1:9000"
database: "analytics"
user: "reader"
password: "secret"
compression: true
dial_timeout: 2s
rw_timeout: 30s
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "analytics", cfg.Database)
	assert.Equal(t, "reader", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.True(t, cfg.Compression)
	assert.Equal(t, 2*time.Second, cfg.DialTimeout)
	assert.Equal(t, 30*time.Second, cfg.RWTimeout)

	opts := cfg.Options()
	assert.Equal(t, cfg.Addr, opts.Addr)
	assert.Equal(t, cfg.User, opts.User)
	assert.True(t, opts.Compression)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
