package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wss/internal/diagfmt"
	"wss/internal/driver"
)

func addDiagnosticFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
	cmd.Flags().Bool("notes", true, "show diagnostic notes")
}

// printDiagnostics writes the diagnostics of res to stderr in the format
// chosen by --format.
func printDiagnostics(cmd *cobra.Command, res *driver.Result) error {
	if res == nil || res.Bag.Len() == 0 {
		return nil
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	notes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return err
	}
	res.Bag.Sort()
	out := cmd.ErrOrStderr()
	switch format {
	case "pretty":
		return diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			Context:   1,
			ShowNotes: notes,
		})
	case "json":
		return diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     notes,
		})
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0
	}
	return n
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

func showTimings(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return v
}
