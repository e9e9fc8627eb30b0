package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wss/internal/project"
)

// buildTarget is what a command compiles: a wss.toml project, a plain
// directory of sources, or a single file.
type buildTarget struct {
	// Project is nil when no wss.toml was found.
	Project   *project.Project
	SrcDir    string
	OutDir    string
	Package   string
	Files     []string
	Jobs      int
	MaxRounds int
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "output directory (default: [build].out or <dir>/out)")
	cmd.Flags().Int("jobs", 0, "parallel parse jobs (default: [build].jobs or GOMAXPROCS)")
}

// resolveTarget finds what to compile from an optional path argument.
func resolveTarget(cmd *cobra.Command, args []string) (*buildTarget, error) {
	start := "."
	if len(args) > 0 && args[0] != "" {
		start = args[0]
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", start, err)
	}

	t := &buildTarget{}
	switch {
	case !info.IsDir():
		if filepath.Ext(abs) != project.SourceExt {
			return nil, fmt.Errorf("%s: expected a %s file or a directory", start, project.SourceExt)
		}
		t.SrcDir = filepath.Dir(abs)
		t.OutDir = filepath.Join(t.SrcDir, project.DefaultOut)
		t.Package = strings.TrimSuffix(filepath.Base(abs), project.SourceExt)
		t.Files = []string{abs}
	default:
		p, err := project.Load(abs)
		switch {
		case err == nil:
			t.Project = p
			t.SrcDir = p.SrcDir()
			t.OutDir = p.OutDir()
			t.Package = p.Config.Package.Name
			t.Jobs = p.Config.Build.Jobs
			t.MaxRounds = p.Config.Build.MaxRounds
		case errors.Is(err, project.ErrNoManifest):
			t.SrcDir = abs
			t.OutDir = filepath.Join(abs, project.DefaultOut)
			t.Package = filepath.Base(abs)
		default:
			return nil, err
		}
	}

	if err := applyTargetFlags(cmd, t); err != nil {
		return nil, err
	}
	if t.Files == nil {
		if err := t.refresh(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func applyTargetFlags(cmd *cobra.Command, t *buildTarget) error {
	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		out, err := filepath.Abs(f.Value.String())
		if err != nil {
			return err
		}
		t.OutDir = out
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return err
		}
		t.Jobs = jobs
	}
	return nil
}

// refresh relists the sources, skipping the output directory.
func (t *buildTarget) refresh() error {
	files, err := project.ListSources(t.SrcDir, t.OutDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if len(files) == 0 {
		return &noSourcesError{target: t}
	}
	t.Files = files
	return nil
}

// displayFiles lists the sources relative to the source directory.
func (t *buildTarget) displayFiles() []string {
	out := make([]string, 0, len(t.Files))
	for _, f := range t.Files {
		if rel, err := filepath.Rel(t.SrcDir, f); err == nil {
			f = rel
		}
		out = append(out, filepath.ToSlash(f))
	}
	return out
}

type noSourcesError struct {
	target *buildTarget
}

func (e *noSourcesError) Error() string {
	return fmt.Sprintf("no %s files in %s", project.SourceExt, e.target.SrcDir)
}
