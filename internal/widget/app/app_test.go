package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/checkout/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"WIDGET_DATABASE_FILE", "WIDGET_REGISTRY_FILE", "WIDGET_PUBLIC_URL", "PORT", "SHUTDOWN_GRACE_PERIOD"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "widget.db", cfg.DatabaseFile)
	require.Empty(t, cfg.RegistryFile)
	require.Equal(t, "http://localhost:8080", cfg.PublicURL)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("WIDGET_REGISTRY_FILE", "/etc/widget/clients.yaml")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "30")

	cfg := LoadConfig()
	require.Equal(t, "/etc/widget/clients.yaml", cfg.RegistryFile)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)

	t.Setenv("PORT", "not-a-port")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "2m")
	cfg = LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 2*time.Minute, cfg.ShutdownGracePeriod)
}

const registryYAML = `clients:
  - client_id: 4fa7fa6876b94d8c81c8b2e1d7a1c9f0
    client_secret: ab5bd52e844eb1ec74f422cb494b449a38524c30e5ab00d6156d76a91094348e
    allowed_origins:
      - http://localhost:5173
`

func TestNewFromRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))

	application, err := New(Config{
		RegistryFile:        path,
		PublicURL:           "http://localhost:8080",
		LogLevel:            "error",
		ShutdownGracePeriod: time.Second,
	})
	require.NoError(t, err)
	require.Nil(t, application.db)
	require.Equal(t, 1, application.registry.Len())

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewFromDatabase(t *testing.T) {
	t.Setenv(cryptox.MasterKeyEnv, "app-test-master-key")
	cryptox.ResetMasterKeyForTesting()
	t.Cleanup(cryptox.ResetMasterKeyForTesting)

	application, err := New(Config{
		DatabaseFile:        filepath.Join(t.TempDir(), "widget.db"),
		PublicURL:           "http://localhost:8080",
		LogLevel:            "error",
		ShutdownGracePeriod: time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, application.db)
	t.Cleanup(func() { _ = application.db.Close() })

	// An empty database is live but not ready.
	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewRejectsBadRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clients:\n  - client_id: x\n    client_secret: short\n"), 0o600))

	_, err := New(Config{RegistryFile: path, LogLevel: "error"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "client_secret must be at least 32 characters")
}
