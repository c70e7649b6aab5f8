package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"bachelorious/pkg/customerror"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"

	envPrefix  = "BACHELORIOUS"
	dirName    = ".bachelorious"
	dbFilename = "bachelorious.db"
)

// Config is read from BACHELORIOUS_* environment variables, optionally seeded
// from a .env file.
type Config struct {
	StorageDriver    string        `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	DataDir          string        `envconfig:"DATA_DIR" default:""`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"warn"`
	AuthDelay        time.Duration `envconfig:"AUTH_DELAY" default:"0s"`
	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"1m"`

	SQLitePath string `ignored:"true"`
}

func NewConfig(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		err := godotenv.Load(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &Config{}, customerror.NewError("config.NewConfig", dotenvPath, err.Error())
		}
	}
	var config Config
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return &Config{}, customerror.NewError("config.NewConfig", "env", err.Error())
	}
	if err := config.ResolveDefaults(); err != nil {
		return &Config{}, err
	}
	return &config, nil
}

// ResolveDefaults validates the storage driver and derives the data paths.
func (c *Config) ResolveDefaults() error {
	switch c.StorageDriver {
	case "":
		c.StorageDriver = DriverSQLite
	case DriverSQLite, DriverFile, DriverMemory:
	default:
		return customerror.NewError("config.ResolveDefaults", "env", fmt.Sprintf("unsupported STORAGE_DRIVER: %s", c.StorageDriver))
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = time.Minute
	}
	if c.AuthDelay < 0 {
		return customerror.NewError("config.ResolveDefaults", "env", "AUTH_DELAY must not be negative")
	}
	if c.StorageDriver == DriverMemory {
		return nil
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return customerror.NewError("config.ResolveDefaults", "env", fmt.Sprintf("cannot determine user home: %s", err.Error()))
		}
		c.DataDir = filepath.Join(home, dirName)
	}
	c.SQLitePath = filepath.Join(c.DataDir, dbFilename)
	return nil
}
