package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/particlewire/internal/api"
)

func effectsCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "effects",
		Short: "List the effects available at the configured version",
		Long: `List every effect that exists at the configured protocol version with
its wire name, resolved handle and capabilities.

Examples:
  particlewire effects
  particlewire effects --version 1.12
  particlewire effects --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			infos := api.Effects(e.catalog)

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EFFECT\tWIRE\tHANDLE\tCAPABILITIES")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Wire, info.Handle, strings.Join(info.Capabilities, ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			info(w, "%d effects at %s", len(infos), e.catalog.Version())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}
