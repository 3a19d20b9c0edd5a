package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/tracker/store"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// dotEnv is loaded into the environment before reading the configuration.
const dotEnv = ".env"

// Config of mtk, read from mtk.toml, MTK_* variables and flags.
type Config struct {
	Storage  string `mapstructure:"storage"` // dir, sqlite or memory
	Data     string `mapstructure:"data"`
	User     string `mapstructure:"user"`
	Currency string `mapstructure:"currency"` // display currency override
}

// loadConfig reads the configuration. Non empty fields of flags take
// precedence. A missing default config file or .env file is not an error.
func loadConfig(path, envFile string, flags Config) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("storage", "dir")
	v.SetDefault("data", ".mtk")
	v.SetDefault("user", "")
	v.SetDefault("currency", "")
	if path == "" {
		v.SetConfigName("mtk")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix("MTK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if flags.Storage != "" {
		c.Storage = flags.Storage
	}
	if flags.Data != "" {
		c.Data = flags.Data
	}
	if flags.User != "" {
		c.User = flags.User
	}
	if flags.Currency != "" {
		c.Currency = flags.Currency
	}
	return c, nil
}

// openStorage opens the storage backend selected by c.
func openStorage(c Config) (store.Storage, func() error, error) {
	nop := func() error { return nil }
	switch c.Storage {
	case "dir":
		d, err := store.OpenDir(c.Data)
		return d, nop, err
	case "sqlite":
		path := c.Data
		if filepath.Ext(path) == "" {
			// a directory like the default one
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, nil, err
			}
			path = filepath.Join(path, "mtk.db")
		}
		s, err := store.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "memory":
		return store.NewMemory(), nop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q want dir, sqlite or memory", c.Storage)
	}
}
