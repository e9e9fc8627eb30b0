package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"wss/internal/ast"
	"wss/internal/driver"
	"wss/internal/scope"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [path]",
	Short: "Print the scope tree after generic instantiation",
	Long: `Compile without writing output and print the scope tree, two spaces per level.
With --details every node also lists its identifiers, type parameters with
their variants, and library accessors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScopes,
}

func init() {
	addTargetFlags(scopesCmd)
	addDiagnosticFlags(scopesCmd)
	scopesCmd.Flags().Bool("details", false, "show identifiers, variants and library accessors")
	scopesCmd.Flags().String("file", "", "only print the subtree of this source file (relative path)")
	scopesCmd.Flags().Bool("stats", false, "print declaration and call counts after the tree")
}

func runScopes(cmd *cobra.Command, args []string) error {
	details, err := cmd.Flags().GetBool("details")
	if err != nil {
		return err
	}
	only, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	stats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}
	t, err := resolveTarget(cmd, args)
	if err != nil {
		return err
	}
	res, err := driver.Compile(cmd.Context(), driver.Request{
		Files:          t.Files,
		BaseDir:        t.SrcDir,
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           t.Jobs,
		MaxRounds:      t.MaxRounds,
	})
	if perr := printDiagnostics(cmd, res); perr != nil {
		return perr
	}
	if res != nil && showTimings(cmd) {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if err != nil {
		return err
	}
	if res.Tree == nil {
		return errors.New("scope tree not built: fix the errors above")
	}

	opts := scope.DumpOptions{}
	if details {
		opts = scope.AllDetails()
	}
	root := res.Program.Scope
	if only != "" {
		root = scope.NoNodeID
		for _, f := range res.Program.Files {
			if f.Path == only {
				root = f.Scope
			}
		}
		if !root.IsValid() {
			return fmt.Errorf("no source file %q", only)
		}
	}
	out := cmd.OutOrStdout()
	if err := res.Tree.Dump(out, root, opts); err != nil {
		return err
	}
	if stats {
		st := ast.Collect(res.Program)
		fmt.Fprintf(out, "\n%d functions, %d classes (%d generic, %d library), %d generic calls, %d typed names, %d nodes\n",
			st.Functions, st.Classes, st.GenericDecls, st.Libraries, st.GenericCalls, st.TypeDecls, res.Tree.Len())
	}
	return nil
}
