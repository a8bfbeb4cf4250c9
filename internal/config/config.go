package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".medconnect"
	envPrefix  = "MEDCONNECT"

	keyStoreBackend    = "store.backend"
	keyStorePath       = "store.path"
	keyStoreSQLitePath = "store.sqlite_path"
	keyScheme          = "credentials.scheme"
	keyBcryptCost      = "credentials.bcrypt_cost"
	keySeedEnabled     = "seed.enabled"
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Store       StoreConfig
	Credentials CredentialsConfig
	Seed        SeedConfig
	Log         LogConfig
}

type StoreConfig struct {
	Backend    string
	Path       string
	SQLitePath string
}

type CredentialsConfig struct {
	Scheme     string
	BcryptCost int
}

type SeedConfig struct {
	Enabled bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads ~/.medconnect/config.toml when present, then MEDCONNECT_*
// environment variables (e.g. MEDCONNECT_STORE_BACKEND), over built-in defaults.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(baseDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(keyStoreBackend, BackendFile)
	cfg.SetDefault(keyStorePath, filepath.Join(baseDir, "store"))
	cfg.SetDefault(keyStoreSQLitePath, filepath.Join(baseDir, "medconnect.db"))
	cfg.SetDefault(keyScheme, "plaintext")
	cfg.SetDefault(keyBcryptCost, 10)
	cfg.SetDefault(keySeedEnabled, true)
	cfg.SetDefault(keyLogLevel, "warn")
	cfg.SetDefault(keyLogFormat, "text")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	c := Config{
		Store: StoreConfig{
			Backend:    strings.ToLower(strings.TrimSpace(cfg.GetString(keyStoreBackend))),
			Path:       cfg.GetString(keyStorePath),
			SQLitePath: cfg.GetString(keyStoreSQLitePath),
		},
		Credentials: CredentialsConfig{
			Scheme:     strings.ToLower(strings.TrimSpace(cfg.GetString(keyScheme))),
			BcryptCost: cfg.GetInt(keyBcryptCost),
		},
		Seed: SeedConfig{Enabled: cfg.GetBool(keySeedEnabled)},
		Log: LogConfig{
			Level:  cfg.GetString(keyLogLevel),
			Format: cfg.GetString(keyLogFormat),
		},
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if strings.TrimSpace(c.Store.Path) == "" {
			return errors.New("store path is empty")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			return errors.New("sqlite path is empty")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported store backend %q", c.Store.Backend)
	}

	switch c.Credentials.Scheme {
	case "plaintext", "bcrypt":
	default:
		return fmt.Errorf("unsupported credential scheme %q", c.Credentials.Scheme)
	}

	return nil
}
