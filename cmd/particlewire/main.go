package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/particlewire/internal/config"
	"github.com/vango-dev/particlewire/internal/errors"
	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/particle"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	protocol   string
	logLevel   string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "particlewire",
		Short: "Encode particle effect packets for every protocol version",
		Long: `particlewire builds particle effect packets for game protocol
versions 1.8 and later.

One request (an effect, a position, offsets, speed, amount and an
optional payload) is encoded into the packet shape of the configured
version:

  • 1.8 - 1.12   legacy enum handle, integer payload data
  • 1.13 - 1.14  registry handle, structured payloads, float coordinates
  • 1.15+        registry handle, structured payloads, double coordinates

The serve command exposes the encoder over HTTP and delivers repeating
packets to viewers connected over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to particlewire.json (default: search from the working directory)")
	pf.StringVarP(&flags.protocol, "version", "V", "", "Protocol version, e.g. 1.19 (overrides the config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the config)")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		initCmd(flags),
		effectsCmd(flags),
		mappingsCmd(flags),
		encodeCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads the config named by --config, or searches for one, or
// falls back to defaults. Flag overrides are applied before validation.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case flags.configPath != "":
		cfg, err = config.LoadFile(flags.configPath)
	default:
		cfg, err = config.LoadFromWorkingDir()
		if errors.HasCode(err, errors.CodeConfigNotFound) {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if flags.protocol != "" {
		cfg.Version = flags.protocol
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the slog logger described by cfg.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// env is what every encoding command needs.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	table   mapping.Table
	catalog *particle.Catalog
}

func setup(ctx context.Context, flags *globalFlags) (*env, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, os.Stderr)

	v, err := cfg.ProtocolVersion()
	if err != nil {
		return nil, err
	}
	table, err := cfg.LoadTable(ctx, logger)
	if err != nil {
		return nil, err
	}
	reg := mapping.Load(table, v)
	logger.Debug("mappings loaded", "version", v.String(), "records", len(table), "resolved", reg.Len())

	return &env{
		cfg:     cfg,
		logger:  logger,
		table:   table,
		catalog: particle.NewCatalog(reg),
	}, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
