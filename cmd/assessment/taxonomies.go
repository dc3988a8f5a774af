package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/assessment-engine/internal/catalog"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/spf13/cobra"
)

var taxonomiesCmd = &cobra.Command{
	Use:   "taxonomies",
	Short: "List registered taxonomies",
	RunE:  runTaxonomies,
}

var taxonomiesShow string

func init() {
	taxonomiesCmd.Flags().StringVar(&taxonomiesShow, "show", "", "Print the full test config for a taxonomy as JSON")
	rootCmd.AddCommand(taxonomiesCmd)
}

func runTaxonomies(cmd *cobra.Command, _ []string) error {
	if taxonomiesShow != "" {
		t, err := types.ParseTaxonomy(taxonomiesShow)
		if err != nil {
			return err
		}
		cfg, err := catalog.Get(t)
		if err != nil {
			return err
		}
		jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TAXONOMY\tFORMAT\tPOOL\tQUESTIONS")
	for _, t := range types.AllTaxonomies() {
		cfg, err := catalog.Get(t)
		if err != nil {
			return err
		}
		pool := "exploratory"
		if t.IsCore() {
			pool = "core"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", t, cfg.Format, pool, len(cfg.Questions))
	}
	return w.Flush()
}
