package config

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"

	"github.com/vango-dev/particlewire/internal/errors"
	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/protocol"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "particlewire.json"

	// DefaultPort is the default server port.
	DefaultPort = 7460

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultNamespace prefixes every Prometheus metric.
	DefaultNamespace = "particlewire"

	// DefaultMetricsPath is where the server exposes metrics.
	DefaultMetricsPath = "/metrics"

	// DefaultWriteTimeout bounds one websocket frame write.
	DefaultWriteTimeout = "5s"
)

// Config represents the complete particlewire.json configuration.
type Config struct {
	// Version is the game protocol version, e.g. "1.19".
	Version string `json:"version,omitempty"`

	// Mappings lists where mapping tables are read from.
	Mappings MappingsConfig `json:"mappings"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Broadcast contains task manager and websocket configuration.
	Broadcast BroadcastConfig `json:"broadcast,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MappingsConfig lists mapping table sources. Later sources override
// records of the same name from earlier ones.
type MappingsConfig struct {
	// Embedded includes the built-in table first.
	Embedded bool `json:"embedded"`

	// Files are extra tables on disk, relative to the config file.
	Files []string `json:"files,omitempty"`

	// S3 is an optional remote table, applied last.
	S3 *S3Config `json:"s3,omitempty"`
}

// S3Config locates a mapping table in an S3 bucket.
type S3Config struct {
	Bucket   string `json:"bucket"`
	Key      string `json:"key"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// TracerName names the tracer spans are recorded under.
	TracerName string `json:"tracerName,omitempty"`
}

// BroadcastConfig contains delivery settings.
type BroadcastConfig struct {
	// TickMillis overrides the length of one tick. Zero means 50ms.
	TickMillis int `json:"tickMillis,omitempty"`

	// WriteTimeout bounds one frame write, e.g. "5s".
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: protocol.LatestVersion.String(),
		Mappings: MappingsConfig{
			Embedded: true,
		},
		Server: ServerConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
		Broadcast: BroadcastConfig{
			WriteTimeout: DefaultWriteTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads particlewire.json from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'particlewire init' to write a default config")
		}
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigInvalid).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigWrite).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigWrite).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = protocol.LatestVersion.String()
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Broadcast.WriteTimeout == "" {
		c.Broadcast.WriteTimeout = DefaultWriteTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := protocol.ParseVersion(c.Version); err != nil {
		return errors.New(errors.CodeVersionInvalid).
			Wrap(err).
			WithSuggestion("Use a version like " + protocol.LatestVersion.String())
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New(errors.CodePortInvalid).
			WithDetail("Port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if !c.Mappings.Embedded && len(c.Mappings.Files) == 0 && c.Mappings.S3 == nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("No mapping source is configured").
			WithSuggestion(`Set "mappings.embedded" to true or list a file`)
	}
	if s := c.Mappings.S3; s != nil && (s.Bucket == "" || s.Key == "") {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("mappings.s3 needs both bucket and key")
	}
	if c.Broadcast.TickMillis < 0 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("broadcast.tickMillis must not be negative")
	}
	if _, err := time.ParseDuration(c.Broadcast.WriteTimeout); err != nil {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail("broadcast.writeTimeout is not a duration: " + err.Error())
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New(errors.CodeConfigInvalid).
			WithDetail(`log.format must be "text" or "json"`)
	}
	return nil
}

// ProtocolVersion parses Version.
func (c *Config) ProtocolVersion() (protocol.Version, error) {
	v, err := protocol.ParseVersion(c.Version)
	if err != nil {
		return 0, errors.New(errors.CodeVersionInvalid).Wrap(err)
	}
	return v, nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// Tick returns the tick length, or zero for the default.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Broadcast.TickMillis) * time.Millisecond
}

// WriteTimeout returns the parsed frame write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Broadcast.WriteTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultWriteTimeout)
	}
	return d
}

// LogLevel returns the configured slog level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, err)
	}
	return level, nil
}

// Sources builds the mapping sources in override order: the embedded
// table, then files, then S3. S3 credentials come from the standard
// AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY variables when set.
func (c *Config) Sources() []mapping.Source {
	var sources []mapping.Source
	if c.Mappings.Embedded {
		sources = append(sources, mapping.EmbeddedSource{})
	}
	for _, f := range c.Mappings.Files {
		sources = append(sources, mapping.NewFileSource(c.resolve(f)))
	}
	if s := c.Mappings.S3; s != nil {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		}
		region := s.Region
		if region == "" {
			region = "us-east-1"
		}
		client := mapping.NewS3Client(region, s.Endpoint, creds)
		sources = append(sources, mapping.NewS3Source(client, s.Bucket, s.Key))
	}
	return sources
}

// LoadTable reads and merges every configured source.
func (c *Config) LoadTable(ctx context.Context, logger *slog.Logger) (mapping.Table, error) {
	table, err := mapping.LoadTable(ctx, logger, c.Sources()...)
	if err == nil {
		return table, nil
	}

	var (
		opErr     *smithy.OperationError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case stderrors.As(err, &opErr):
		return nil, errors.New(errors.CodeMappingRemote).Wrap(err)
	case stderrors.As(err, &syntaxErr), stderrors.As(err, &typeErr),
		stderrors.Is(err, mapping.ErrEmptyName),
		stderrors.Is(err, mapping.ErrInvalidRange),
		stderrors.Is(err, mapping.ErrOverlappingName),
		stderrors.Is(err, mapping.ErrEmptyTimeline):
		return nil, errors.New(errors.CodeMappingInvalid).Wrap(err)
	}
	return nil, errors.New(errors.CodeMappingLoad).Wrap(err)
}

// resolve makes path relative to the config file's directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.Dir() == "" {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find particlewire.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'particlewire init' to write a default config")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the working directory or
// one of its parents.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
