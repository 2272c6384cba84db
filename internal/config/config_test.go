package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/particlewire/internal/errors"
	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/protocol"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Version != protocol.LatestVersion.String() {
		t.Errorf("Version = %q, want %q", cfg.Version, protocol.LatestVersion.String())
	}
	if !cfg.Mappings.Embedded {
		t.Error("Mappings.Embedded should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("New().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.HasCode(err, errors.CodeConfigNotFound) {
		t.Errorf("Load(missing) error = %v, want E100", err)
	}

	writeConfig(t, tmpDir, `{
  "version": "1.13",
  "mappings": {
    "embedded": false,
    "files": ["tables/extra.json"]
  },
  "server": {
    "port": 8080,
    "host": "0.0.0.0"
  },
  "broadcast": {
    "tickMillis": 10
  },
  "log": {
    "level": "debug"
  }
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q, want %q", cfg.Address(), "0.0.0.0:8080")
	}
	if cfg.Mappings.Embedded {
		t.Error("Mappings.Embedded should be false")
	}
	if v, err := cfg.ProtocolVersion(); err != nil || v != 13 {
		t.Errorf("ProtocolVersion() = %v, %v; want 13", v, err)
	}
	if cfg.Tick() != 10*time.Millisecond {
		t.Errorf("Tick() = %v, want 10ms", cfg.Tick())
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	// defaults fill what the file leaves out
	if cfg.Metrics.Namespace != DefaultNamespace || cfg.Log.Format != "text" {
		t.Errorf("defaults not applied: %+v %+v", cfg.Metrics, cfg.Log)
	}
	if cfg.WriteTimeout() != 5*time.Second {
		t.Errorf("WriteTimeout() = %v, want 5s", cfg.WriteTimeout())
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "not valid json")

	_, err := LoadFile(path)
	if !errors.HasCode(err, errors.CodeConfigInvalid) {
		t.Errorf("Expected E101 error, got: %v", err)
	}
}

func TestSave(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.Server.Port = 9001
	cfg.Mappings.Embedded = false
	cfg.Mappings.Files = []string{"a.json"}

	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}

	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want %d", reloaded.Server.Port, 9001)
	}
	if reloaded.Mappings.Embedded {
		t.Error("Mappings.Embedded = true after round trip, want false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"bad version", func(c *Config) { c.Version = "1.x" }, errors.CodeVersionInvalid},
		{"old version", func(c *Config) { c.Version = "1.7" }, errors.CodeVersionInvalid},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, errors.CodePortInvalid},
		{"large port", func(c *Config) { c.Server.Port = 70000 }, errors.CodePortInvalid},
		{"no sources", func(c *Config) { c.Mappings.Embedded = false }, errors.CodeConfigInvalid},
		{"s3 without key", func(c *Config) { c.Mappings.S3 = &S3Config{Bucket: "b"} }, errors.CodeConfigInvalid},
		{"negative tick", func(c *Config) { c.Broadcast.TickMillis = -5 }, errors.CodeConfigInvalid},
		{"bad timeout", func(c *Config) { c.Broadcast.WriteTimeout = "soon" }, errors.CodeConfigInvalid},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, errors.CodeConfigInvalid},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, errors.CodeConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.HasCode(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSources(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.configPath = filepath.Join(dir, ConfigFileName)
	cfg.Mappings.Files = []string{"extra.json", "/abs/other.json"}
	cfg.Mappings.S3 = &S3Config{Bucket: "tables", Key: "mappings.json"}

	var paths []string
	for _, s := range cfg.Sources() {
		paths = append(paths, s.Path())
	}
	want := []string{
		mapping.EmbeddedSource{}.Path(),
		filepath.Join(dir, "extra.json"),
		"/abs/other.json",
		"s3://tables/mappings.json",
	}
	if len(paths) != len(want) {
		t.Fatalf("Sources() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Sources()[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestLoadTable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	cfg := New()
	cfg.configPath = filepath.Join(dir, ConfigFileName)

	// a missing override is skipped
	cfg.Mappings.Files = []string{"missing.json"}
	table, err := cfg.LoadTable(context.Background(), logger)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if len(table) != len(mapping.Default()) {
		t.Errorf("LoadTable() records = %d, want %d", len(table), len(mapping.Default()))
	}

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg.Mappings.Files = []string{"broken.json"}
	if _, err := cfg.LoadTable(context.Background(), logger); !errors.HasCode(err, errors.CodeMappingInvalid) {
		t.Errorf("LoadTable(broken) error = %v, want E111", err)
	}

	cfg.Mappings.Embedded = false
	cfg.Mappings.Files = []string{"missing.json"}
	if _, err := cfg.LoadTable(context.Background(), logger); !errors.HasCode(err, errors.CodeMappingLoad) {
		t.Errorf("LoadTable(nothing) error = %v, want E110", err)
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists should return false for empty dir")
	}
	writeConfig(t, tmpDir, "{}")
	if !Exists(tmpDir) {
		t.Error("Exists should return true when config exists")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "{}")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if found != want {
		t.Errorf("FindProjectRoot = %q, want %q", found, want)
	}
}
