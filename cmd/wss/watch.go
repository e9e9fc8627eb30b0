package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wss/internal/buildpipeline"
	"wss/internal/project"
	"wss/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rebuild whenever a .wss source changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	addTargetFlags(watchCmd)
	addDiagnosticFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a rebuild")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	t, err := resolveTarget(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	out := cmd.OutOrStdout()
	var last project.Digest
	rebuild := func(reason string) {
		if err := t.refresh(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		digest, err := project.HashFiles(t.Files)
		if err == nil && digest == last {
			return
		}
		last = digest
		if !quiet(cmd) {
			fmt.Fprintf(out, "[%s] %s\n", time.Now().Format("15:04:05"), reason)
		}
		if _, err := buildOnce(cmd, t, false); err != nil && !errors.Is(err, buildpipeline.ErrDiagnostics) {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}

	rebuild("initial build")
	err = watch.Run(ctx, t.SrcDir, watch.Options{Debounce: debounce, Skip: []string{t.OutDir}}, func(changed []string) {
		rebuild(fmt.Sprintf("%d file(s) changed", len(changed)))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
