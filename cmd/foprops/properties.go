package main

import (
	"fmt"
	"strings"

	pr "github.com/benoitkugler/foprops/fo/properties"
	"github.com/benoitkugler/foprops/fo/style"
	"github.com/spf13/cobra"
)

func newPropertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "properties",
		Short: "List the supported properties and shorthands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			makers := style.DefaultMakers()
			fmt.Fprintf(w, "%-22s %-10s %-9s %s\n", "PROPERTY", "INITIAL", "INHERITED", "COMPUTED BY")
			for _, p := range pr.AllProps() {
				fmt.Fprintf(w, "%-22s %-10s %-9t %s\n", p, pr.InitialValues[p], p.IsInherited(), makerName(makers.Maker(p)))
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%-22s %s\n", "SHORTHAND", "LONGHANDS")
			for s := pr.Shorthand(1); s < pr.NbShorthands; s++ {
				names := make([]string, len(pr.Longhands[s]))
				for i, p := range pr.Longhands[s] {
					names[i] = p.String()
				}
				fmt.Fprintf(w, "%-22s %s\n", s, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func makerName(m style.Maker) string {
	switch m.(type) {
	case style.IndentMaker:
		return "indent"
	case style.CorrespondingMaker:
		return "corresponding"
	case style.PhysicalMaker:
		return "physical"
	default:
		return "plain"
	}
}
