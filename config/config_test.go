package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 100*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "restaurant", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, int64(1), cfg.Orders.MinOrderValue)
	assert.True(t, cfg.Orders.TerminalStatusLock)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxBytes)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com, https://admin.example.com")
	t.Setenv("MIN_ORDER_VALUE", "500")
	t.Setenv("TERMINAL_STATUS_LOCK", "false")
	t.Setenv("REQUEST_TIMEOUT", "15s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(500), cfg.Orders.MinOrderValue)
	assert.False(t, cfg.Orders.TerminalStatusLock)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("MONGODB_DATABASE", "")
	os.Unsetenv("SECRET_KEY")
	os.Unsetenv("MONGODB_DATABASE")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SECRET_KEY=from-file\nMONGODB_DATABASE=orders_test\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SECRET_KEY")
		os.Unsetenv("MONGODB_DATABASE")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.SecretKey)
	assert.Equal(t, "orders_test", cfg.Database.Name)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load("")
	assert.EqualError(t, err, "SECRET_KEY must be set")
}
