package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. The same shape serves the bank
// and the acquirer; each binary reads the sections it needs.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Authority AuthorityConfig `mapstructure:"authority"`
	Keys      KeysConfig      `mapstructure:"keys"`
	Payees    PayeesConfig    `mapstructure:"payees"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address string.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AuthorityConfig describes the authority objects this server publishes.
type AuthorityConfig struct {
	URL      string        `mapstructure:"url"`       // externally visible GET /authority URL
	Service  string        `mapstructure:"service"`   // externally visible POST endpoint URL
	HomePage string        `mapstructure:"home_page"` // optional
	Lifetime time.Duration `mapstructure:"lifetime"`  // authority object validity
}

// KeysConfig points at the PEM key material on disk.
type KeysConfig struct {
	SigningKey       string `mapstructure:"signing_key"`       // EC or RSA private key
	CertificatePath  string `mapstructure:"certificate_path"`  // chain, leaf first
	EncryptionECKey  string `mapstructure:"encryption_ec_key"` // P-256 decryption key
	EncryptionRSAKey string `mapstructure:"encryption_rsa_key"`
	TrustRoots       string `mapstructure:"trust_roots"`  // accepted issuer roots
	AcquirerKey      string `mapstructure:"acquirer_key"` // bank only: acquirer's public encryption key
}

// PayeesConfig points at the flat-file payee database.
type PayeesConfig struct {
	Database string `mapstructure:"database"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SATURN.
// Nested keys use underscore: SATURN_SERVER_PORT, SATURN_KEYS_SIGNING_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("authority.url", "http://localhost:8080/authority")
	v.SetDefault("authority.service", "http://localhost:8080/service")
	v.SetDefault("authority.home_page", "")
	v.SetDefault("authority.lifetime", "1h")
	v.SetDefault("keys.signing_key", "keys/signing.pem")
	v.SetDefault("keys.certificate_path", "keys/chain.pem")
	v.SetDefault("keys.encryption_ec_key", "keys/encryption-ec.pem")
	v.SetDefault("keys.encryption_rsa_key", "keys/encryption-rsa.pem")
	v.SetDefault("keys.trust_roots", "keys/trust-roots.pem")
	v.SetDefault("keys.acquirer_key", "")
	v.SetDefault("payees.database", "payees.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SATURN_SERVER_PORT -> server.port
	v.SetEnvPrefix("SATURN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
