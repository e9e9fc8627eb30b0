package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the output directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().String("out", "", "output directory (default: [build].out or <dir>/out)")
}

func runClean(cmd *cobra.Command, args []string) error {
	t, err := resolveCleanTarget(cmd, args)
	if err != nil {
		return err
	}
	info, err := os.Stat(t.OutDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "output directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", t.OutDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", t.OutDir)
	}
	if err := os.RemoveAll(t.OutDir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", t.OutDir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", relToWD(t.OutDir))
	return nil
}

// resolveCleanTarget is resolveTarget without requiring sources to exist.
func resolveCleanTarget(cmd *cobra.Command, args []string) (*buildTarget, error) {
	t, err := resolveTarget(cmd, args)
	if err == nil {
		return t, nil
	}
	var noSources *noSourcesError
	if errors.As(err, &noSources) {
		return noSources.target, nil
	}
	return nil, err
}
