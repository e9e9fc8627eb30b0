package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"wss/internal/buildpipeline"
	"wss/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Compile .wss sources into .ws output",
	Long: `Compile a wss project (wss.toml), a directory of .wss files or a single file.
One .ws file is written per source, and a library manifest (<package>.wsl)
when any declaration is marked library.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addTargetFlags(buildCmd)
	addDiagnosticFlags(buildCmd)
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	t, err := resolveTarget(cmd, args)
	if err != nil {
		return err
	}
	_, err = buildOnce(cmd, t, shouldUseTUI(mode, quiet(cmd)))
	return err
}

// buildOnce runs one build of t and reports its diagnostics, summary and
// timings.
func buildOnce(cmd *cobra.Command, t *buildTarget, useUI bool) (buildpipeline.Result, error) {
	req := buildpipeline.Request{
		Request: driver.Request{
			Files:          t.Files,
			BaseDir:        t.SrcDir,
			MaxDiagnostics: maxDiagnostics(cmd),
			Jobs:           t.Jobs,
			MaxRounds:      t.MaxRounds,
		},
		Package: t.Package,
		OutDir:  t.OutDir,
	}
	var (
		res buildpipeline.Result
		err error
	)
	if useUI {
		res, err = runBuildWithUI(cmd.Context(), "build "+t.Package, t.displayFiles(), req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), &req)
	}
	if perr := printDiagnostics(cmd, res.Compile); perr != nil {
		return res, perr
	}
	if showTimings(cmd) {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if err != nil {
		return res, err
	}
	if !quiet(cmd) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "built %d file(s) into %s\n", len(res.Outputs), relToWD(t.OutDir))
		if res.Manifest != "" {
			fmt.Fprintf(out, "library manifest %s\n", relToWD(res.Manifest))
		}
	}
	return res, nil
}

func relToWD(path string) string {
	if rel, err := filepath.Rel(".", path); err == nil {
		return rel
	}
	return path
}
