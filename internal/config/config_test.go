package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearOdooEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	t.Setenv("ODP_CONFIG", "")
	require.NoError(t, os.Unsetenv("ODP_CONFIG"))
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearOdooEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ODOO_URL", "http://localhost:8069/")
	t.Setenv("ODOO_DB", "odoo")
	t.Setenv("ODOO_USERNAME", "admin")
	t.Setenv("ODOO_PASSWORD", "secret")
	t.Setenv("ODOO_TRANSPORT", "JSONRPC")
	t.Setenv("ODOO_TIMEOUT", "15s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{ServiceURL: "http://localhost:8069", Database: "odoo", Username: "admin", Secret: "secret"}, cfg.Credentials)
	assert.Equal(t, TransportJSONRPC, cfg.Transport)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultListen, cfg.Listen)
}

func TestLoadWithoutCredentialsSucceedsAndDefersFailure(t *testing.T) {
	clearOdooEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, Transport(""), cfg.Transport)
	assert.Equal(t, TransportXMLRPC, cfg.TransportOr(TransportXMLRPC))

	err = cfg.Credentials.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigurationMissing))
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	clearOdooEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ODOO_TRANSPORT", "grpc")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	clearOdooEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ODOO_TIMEOUT", "soon")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ODOO_TIMEOUT")
}

func TestLoadReadsConfigFileAndEnvWins(t *testing.T) {
	clearOdooEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".config", "odp", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`[odoo]
url = "http://file.example.com"
db = "filedb"
username = "file-user"
password = "file-pass"
transport = "jsonrpc"

[server]
listen = "0.0.0.0:9000"
`), 0o600))

	t.Setenv("ODOO_DB", "envdb")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://file.example.com", cfg.Credentials.ServiceURL)
	assert.Equal(t, "envdb", cfg.Credentials.Database)
	assert.Equal(t, "file-pass", cfg.Credentials.Secret)
	assert.Equal(t, TransportJSONRPC, cfg.Transport)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearOdooEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ODOO_DB=from-dotenv\nODOO_USERNAME=dotenv-user\n"), 0o600))
	t.Setenv("ODOO_DB", "from-env")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	t.Cleanup(func() { _ = os.Unsetenv("ODOO_USERNAME") })

	assert.Equal(t, "from-env", os.Getenv("ODOO_DB"))
	assert.Equal(t, "dotenv-user", os.Getenv("ODOO_USERNAME"))
}

func TestRenderRedactsPassword(t *testing.T) {
	data, err := Render(Config{
		Credentials: domain.Credentials{ServiceURL: "http://localhost:8069", Database: "odoo", Username: "admin", Secret: "secret"},
		Transport:   TransportXMLRPC,
		Timeout:     30 * time.Second,
		Listen:      DefaultListen,
	})
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "[odoo]")
	assert.Contains(t, out, "http://localhost:8069")
	assert.Contains(t, out, "********")
	assert.Contains(t, out, "30s")
	assert.NotContains(t, out, "secret")
}

func TestWriteFileThenLoadRoundTrip(t *testing.T) {
	clearOdooEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	require.NoError(t, err)

	cfg := Config{
		Credentials: domain.Credentials{ServiceURL: "http://localhost:8069", Database: "odoo", Username: "admin", Secret: "secret"},
		Listen:      DefaultListen,
	}
	require.NoError(t, WriteFile(path, cfg, true, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	err = WriteFile(path, cfg, true, false)
	assert.True(t, errors.Is(err, ErrConfigExists))

	loaded, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, cfg.Credentials, loaded.Credentials)
}

func TestLoadPasswordReferenceFromEnvAndFile(t *testing.T) {
	clearOdooEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ODOO_PASSWORD_REF", " odoo/admin ")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "odoo/admin", cfg.PasswordRef)
	assert.Empty(t, cfg.Credentials.Secret)

	require.NoError(t, WriteFile(cfg.Path, *cfg, false, false))
	require.NoError(t, os.Unsetenv("ODOO_PASSWORD_REF"))

	reloaded, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "odoo/admin", reloaded.PasswordRef)

	rendered, err := Render(*reloaded)
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "password_ref")
}

func TestWriteFileWithoutSecretLeavesPasswordOut(t *testing.T) {
	clearOdooEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".config", "odp", "config.toml")

	cfg := Config{
		Credentials: domain.Credentials{ServiceURL: "http://localhost:8069", Database: "odoo", Username: "admin", Secret: "real"},
		PasswordRef: "odoo/admin",
		Listen:      DefaultListen,
	}
	require.NoError(t, WriteFile(path, cfg, false, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "real")
	assert.NotContains(t, string(data), "********")
	assert.NotContains(t, string(data), "password =")

	loaded, err := Load(viper.New())
	require.NoError(t, err)
	assert.Empty(t, loaded.Credentials.Secret)
	assert.Equal(t, "odoo/admin", loaded.PasswordRef)
	assert.Equal(t, "admin", loaded.Credentials.Username)
}
