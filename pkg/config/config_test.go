package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Horizon != grid.DefaultHorizon {
		t.Errorf("Horizon = %d, want %d", cfg.Grid.Horizon, grid.DefaultHorizon)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Store.Backend)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[grid]
horizon = 50

[store]
backend = "redis"

[store.redis]
addr = "cache:6379"
db = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Horizon != 50 {
		t.Errorf("Horizon = %d, want 50", cfg.Grid.Horizon)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.Redis.Addr != "cache:6379" || cfg.Store.Redis.DB != 2 {
		t.Errorf("Store = %+v", cfg.Store)
	}
	// Unset keys keep their defaults.
	if cfg.Store.Redis.Prefix != "sectiongrid:" {
		t.Errorf("Prefix = %q, want default", cfg.Store.Redis.Prefix)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SECTIONGRID_STORE", "mongo")
	t.Setenv("SECTIONGRID_MONGO_URI", "mongodb://db:27017")
	t.Setenv("SECTIONGRID_ADDR", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != BackendMongo || cfg.Store.Mongo.URI != "mongodb://db:27017" || cfg.Server.Addr != ":9999" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "[grid\nhorizon = "},
		{"unknown backend", "[store]\nbackend = \"s3\""},
		{"zero horizon", "[grid]\nhorizon = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), "[store.mongo]") {
		t.Errorf("encoded config missing [store.mongo]:\n%s", data)
	}
	cfg, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load(encoded) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip = %+v, want %+v", cfg, Default())
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	if p, _ := Path(); p != filepath.Join("/cfg", "sectiongrid", "config.toml") {
		t.Errorf("Path() = %q", p)
	}
	if d, _ := DataDir(); d != filepath.Join("/data", "sectiongrid", "boards") {
		t.Errorf("DataDir() = %q", d)
	}
}
