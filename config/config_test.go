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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())

	assert.Equal(t, "http://localhost:8080/authority", cfg.Authority.URL)
	assert.Equal(t, "http://localhost:8080/service", cfg.Authority.Service)
	assert.Equal(t, time.Hour, cfg.Authority.Lifetime)

	assert.Equal(t, "keys/signing.pem", cfg.Keys.SigningKey)
	assert.Equal(t, "keys/chain.pem", cfg.Keys.CertificatePath)
	assert.Equal(t, "keys/encryption-ec.pem", cfg.Keys.EncryptionECKey)
	assert.Equal(t, "keys/trust-roots.pem", cfg.Keys.TrustRoots)
	assert.Empty(t, cfg.Keys.AcquirerKey)

	assert.Equal(t, "payees.json", cfg.Payees.Database)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
authority:
  url: "https://bank.example/authority"
  service: "https://bank.example/service"
  home_page: "https://bank.example"
  lifetime: "30m"
keys:
  signing_key: "/etc/saturn/signing.pem"
  certificate_path: "/etc/saturn/chain.pem"
  encryption_ec_key: "/etc/saturn/enc-ec.pem"
  trust_roots: "/etc/saturn/roots.pem"
  acquirer_key: "/etc/saturn/acquirer.pem"
payees:
  database: "/etc/saturn/payees.json"
log:
  level: "debug"
  pretty: true
`)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://bank.example/authority", cfg.Authority.URL)
	assert.Equal(t, "https://bank.example/service", cfg.Authority.Service)
	assert.Equal(t, "https://bank.example", cfg.Authority.HomePage)
	assert.Equal(t, 30*time.Minute, cfg.Authority.Lifetime)
	assert.Equal(t, "/etc/saturn/signing.pem", cfg.Keys.SigningKey)
	assert.Equal(t, "/etc/saturn/acquirer.pem", cfg.Keys.AcquirerKey)
	assert.Equal(t, "/etc/saturn/payees.json", cfg.Payees.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SATURN_SERVER_PORT", "3000")
	t.Setenv("SATURN_AUTHORITY_URL", "https://env.example/authority")
	t.Setenv("SATURN_KEYS_SIGNING_KEY", "/run/secrets/signing.pem")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://env.example/authority", cfg.Authority.URL)
	assert.Equal(t, "/run/secrets/signing.pem", cfg.Keys.SigningKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
