package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wss/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new wss project",
	Long: `Create wss.toml and src/main.wss. Without an argument the current directory
is initialized; a name that does not exist yet becomes a new directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultMainSource = `// Entry point. Generic declarations are emitted once per use.
class Box<T> {
    value: T;
    function get(): T { return value; }
}

function wrap<T>(x: T): Box<T> { return Box<T>(x); }

function main() {
    let b: Box<Int> = wrap<Int>(42);
    return;
}
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "wss-project"
	}
	manifestPath := filepath.Join(target, project.ManifestName)
	cfg := project.Config{
		Package: project.PackageConfig{Name: name},
		Build:   project.BuildConfig{Src: project.DefaultSrc, Out: project.DefaultOut},
	}
	if err := project.WriteConfig(manifestPath, cfg); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("project already initialized: %s exists", manifestPath)
		}
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	srcDir := filepath.Join(target, project.DefaultSrc)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return err
	}
	mainPath := filepath.Join(srcDir, "main"+project.SourceExt)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainSource), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		createdMain = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized wss project %q in %s\n", name, relToWD(target))
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintf(out, "  - %s/main.wss\n", project.DefaultSrc)
	} else {
		fmt.Fprintf(out, "  - %s/main.wss (existing)\n", project.DefaultSrc)
	}
	return nil
}
