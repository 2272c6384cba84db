package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func mappingsCmd(flags *globalFlags) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Show the symbol names resolved for the configured version",
		Long: `Show every mapping name and the symbol it resolves to at the configured
protocol version. With --table the merged mapping table from all
configured sources is printed as JSON instead.

Examples:
  particlewire mappings --version 1.17
  particlewire mappings --table > mappings.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dump {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(e.table)
			}

			reg := e.catalog.Registry()
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSYMBOL")
			for _, name := range reg.Names() {
				sym, _ := reg.Resolve(name)
				fmt.Fprintf(tw, "%s\t%s\n", name, sym)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			info(w, "%d of %d names resolve at %s", reg.Len(), len(e.table), reg.Version())
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "table", false, "Print the merged mapping table as JSON")

	return cmd
}
