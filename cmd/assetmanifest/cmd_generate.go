package main

import (
	"fmt"

	"assetmanifest/cmd/assetmanifest/ui"
	"assetmanifest/internal/logging"
	"assetmanifest/internal/manifest"

	"github.com/spf13/cobra"
)

// generateCmd is the explicit form of the root command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the manifest (default command)",
	Long: `Lists the entries matching the source pattern (one directory level, no
recursion) and replaces the destination manifest with {"urls": [...]}.

The destination's parent directory must exist. When the source directory is
missing or unreadable the destination is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func newGenerator() (*manifest.Generator, error) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	return manifest.NewGenerator(cfg.SourcePattern, cfg.DestinationPath,
		manifest.WithFormat(format),
		manifest.WithLogger(logging.Get(logger, logging.CategoryWrite)),
		manifest.WithListLogger(logging.Get(logger, logging.CategoryGlob)),
	), nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	g, err := newGenerator()
	if err != nil {
		return err
	}

	m, err := g.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate manifest: %w", err)
	}

	styles := ui.NewStyles()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d urls)\n",
		styles.Success.Render("Wrote"), g.DestinationPath(), len(m.URLs))
	return nil
}
