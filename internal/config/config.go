// Package config resolves connection settings from the environment, an
// optional .env file and an optional TOML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configType    = "toml"
	configDir     = ".config/odp"
	configFile    = "config.toml"
	DefaultListen = "127.0.0.1:8000"
)

const (
	keyURL       = "odoo.url"
	keyDatabase  = "odoo.db"
	keyUsername  = "odoo.username"
	keyPassword  = "odoo.password"
	keyPassRef   = "odoo.password_ref"
	keyTransport = "odoo.transport"
	keyTimeout   = "odoo.timeout"
	keyListen    = "server.listen"
)

var envBindings = map[string]string{
	keyURL:       "ODOO_URL",
	keyDatabase:  "ODOO_DB",
	keyUsername:  "ODOO_USERNAME",
	keyPassword:  "ODOO_PASSWORD",
	keyPassRef:   "ODOO_PASSWORD_REF",
	keyTransport: "ODOO_TRANSPORT",
	keyTimeout:   "ODOO_TIMEOUT",
	keyListen:    "ODP_LISTEN",
}

type Transport string

const (
	TransportXMLRPC  Transport = "xmlrpc"
	TransportJSONRPC Transport = "jsonrpc"
)

func ParseTransport(raw string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(raw))); t {
	case "", TransportXMLRPC, TransportJSONRPC:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (want %s or %s)", raw, TransportXMLRPC, TransportJSONRPC)
	}
}

type Config struct {
	Credentials domain.Credentials
	// Transport is empty when neither env nor file chose one; each front end
	// then applies its own default.
	Transport Transport
	// PasswordRef names a pass(1) entry holding the password. It is only
	// consulted when no password is set directly.
	PasswordRef string
	Timeout     time.Duration
	Listen      string
	// Path is the config file that was read, or the default location when
	// none exists yet.
	Path string
}

func (c Config) TransportOr(fallback Transport) Transport {
	if c.Transport == "" {
		return fallback
	}
	return c.Transport
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load never fails on missing credentials: those surface as
// ErrConfigurationMissing on the first remote call.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	if override := os.Getenv("ODP_CONFIG"); override != "" {
		path = override
	}

	v.SetConfigType(configType)
	v.SetConfigFile(path)
	v.SetDefault(keyListen, DefaultListen)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	transport, err := ParseTransport(v.GetString(keyTransport))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	timeout, err := parseTimeout(v.GetString(keyTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Config{
		Credentials: domain.Credentials{
			ServiceURL: strings.TrimRight(strings.TrimSpace(v.GetString(keyURL)), "/"),
			Database:   v.GetString(keyDatabase),
			Username:   v.GetString(keyUsername),
			Secret:     v.GetString(keyPassword),
		},
		Transport:   transport,
		PasswordRef: strings.TrimSpace(v.GetString(keyPassRef)),
		Timeout:     timeout,
		Listen:      v.GetString(keyListen),
		Path:        path,
	}, nil
}

func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir, configFile), nil
}

func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse ODOO_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("ODOO_TIMEOUT must not be negative")
	}
	return timeout, nil
}
