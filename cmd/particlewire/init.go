package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/particlewire/internal/config"
	"github.com/vango-dev/particlewire/internal/errors"
)

func initCmd(flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default particlewire.json",
		Long: `Write particlewire.json with default settings into dir (default: the
working directory). An existing file is kept unless --force is given.

Examples:
  particlewire init
  particlewire init ./server --version 1.16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.New(errors.CodeConfigWrite).
					WithDetail(config.ConfigFileName + " already exists in " + dir + ".").
					WithSuggestion("Pass --force to overwrite it")
			}

			cfg := config.New()
			if flags.protocol != "" {
				cfg.Version = flags.protocol
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := filepath.Join(dir, config.ConfigFileName)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s (protocol %s)", path, cfg.Version)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}
