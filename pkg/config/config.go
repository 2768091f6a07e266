// Package config loads sectiongrid settings from a TOML file.
//
// A missing file is not an error: [Load] returns [Default] so the CLI works
// out of the box with the file store under the user's data directory.
//
//	[grid]
//	horizon = 200
//
//	[store]
//	backend = "redis"
//
//	[store.redis]
//	addr = "localhost:6379"
//	prefix = "sectiongrid:"
//
//	[server]
//	addr = ":8080"
//
// A few environment variables override the file so deployments can switch
// backends without editing it: SECTIONGRID_STORE, SECTIONGRID_REDIS_ADDR,
// SECTIONGRID_MONGO_URI and SECTIONGRID_ADDR.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
)

const appName = "sectiongrid"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the supported store backends.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo}

// Config is the complete settings file.
type Config struct {
	Grid   Grid   `toml:"grid"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
}

// Grid holds engine settings.
type Grid struct {
	// Horizon is the number of rows the placement scan covers.
	Horizon int `toml:"horizon"`
}

// Store selects and configures the persistence backend.
type Store struct {
	Backend string `toml:"backend"`
	File    File   `toml:"file"`
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

// File configures the file store.
type File struct {
	Dir string `toml:"dir"`
}

// Redis configures the Redis store.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo configures the MongoDB store.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Grid: Grid{Horizon: grid.DefaultHorizon},
		Store: Store{
			Backend: BackendFile,
			Redis:   Redis{Addr: "localhost:6379", Prefix: appName + ":"},
			Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: appName, Collection: "boards"},
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the settings file at path on top of [Default] and applies
// environment overrides. An empty path uses [Path]. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SECTIONGRID_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("SECTIONGRID_REDIS_ADDR"); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := os.Getenv("SECTIONGRID_MONGO_URI"); v != "" {
		c.Store.Mongo.URI = v
	}
	if v := os.Getenv("SECTIONGRID_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks the backend name and the horizon.
func (c Config) Validate() error {
	if !slices.Contains(Backends, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want one of %v)", c.Store.Backend, Backends)
	}
	if c.Grid.Horizon <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid horizon must be positive, got %d", c.Grid.Horizon)
	}
	return nil
}

// Encode renders the settings as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Path returns the default settings file location using the XDG convention
// (~/.config/sectiongrid/config.toml).
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DataDir returns the default directory for the file store using the XDG
// convention (~/.local/share/sectiongrid/boards).
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName, "boards"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName, "boards"), nil
}
