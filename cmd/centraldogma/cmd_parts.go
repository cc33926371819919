package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPartsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "parts",
		Short: "List the coding sequences in the parts registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOLOR\tFULL NAME")
			for _, p := range e.parts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.ShortName, p.ColorHex, p.FullName)
			}
			return w.Flush()
		},
	}
}
