package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wss/internal/library"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest.wsl>",
	Short: "Print a library manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print the manifest as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	m, err := library.Read(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
	renderManifest(cmd.OutOrStdout(), m)
	return nil
}

func renderManifest(out io.Writer, m *library.Manifest) {
	bold := color.New(color.Bold)
	fmt.Fprintf(out, "%s %s (schema %d, %d entries)\n", bold.Sprint("library"), m.Package, m.Schema, len(m.Entries))
	for _, e := range m.Entries {
		name := e.Name
		if len(e.TypeParams) > 0 {
			name += "<" + strings.Join(e.TypeParams, ", ") + ">"
		}
		fmt.Fprintf(out, "  %s %s  [%s]  %s\n", e.Kind, bold.Sprint(name), e.Accessor, e.File)
		symbols := e.Symbols()
		if len(e.TypeParams) > 0 && len(symbols) == 0 {
			fmt.Fprintln(out, "    (no instantiations)")
		}
		for _, s := range symbols {
			fmt.Fprintf(out, "    %s\n", s)
		}
	}
}
