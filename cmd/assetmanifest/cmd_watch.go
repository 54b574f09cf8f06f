package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetmanifest/cmd/assetmanifest/ui"
	"assetmanifest/internal/logging"
	"assetmanifest/internal/manifest"
	"assetmanifest/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce time.Duration

// watchCmd regenerates the manifest whenever the source directory changes
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the manifest whenever the source directory changes",
	Long: `Writes the manifest once, then watches the source directory and rewrites
the manifest in full after each burst of changes. Stops on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before regenerating (default from config, 250ms)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := newGenerator()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := ui.NewStyles()
	log := logging.Get(logger, logging.CategoryWatch)

	wrote := func(m *manifest.Manifest) {
		fmt.Fprintf(out, "%s %s %s (%d urls)\n",
			styles.Muted.Render(time.Now().Format("15:04:05")),
			styles.Success.Render("Wrote"), g.DestinationPath(), len(m.URLs))
	}
	regenerate := func(ctx context.Context) error {
		if ctx.Err() != nil {
			return nil // shutting down
		}
		m, err := g.Generate()
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", styles.Error.Render("Failed"), err)
			return err
		}
		wrote(m)
		return nil
	}

	m, err := g.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}
	wrote(m)

	debounce := cfg.GetDebounce()
	if watchDebounce > 0 {
		debounce = watchDebounce
	}

	dir := manifest.SourceDir(g.SourcePattern())
	w, err := watch.New(dir, regenerate,
		watch.WithDebounce(debounce),
		watch.WithIgnore(g.DestinationPath()),
		watch.WithLogger(log))
	if err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", dir)
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("failed to watch source: %w", err)
	}

	stats := w.Stats()
	log.Info("watch stopped",
		zap.Int("events", stats.Events),
		zap.Int("runs", stats.Runs),
		zap.Int("errors", stats.Errors))
	return nil
}
