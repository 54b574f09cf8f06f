package main

import (
	"errors"
	"fmt"

	"assetmanifest/cmd/assetmanifest/ui"
	"assetmanifest/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errStale = errors.New("manifest is out of date; run assetmanifest generate")

// checkCmd verifies the manifest on disk, for CI
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Exit non-zero if the manifest on disk is out of date",
	Long: `Regenerates the manifest in memory and compares it byte for byte with the
destination file. Nothing is written. Added and removed paths are listed.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := newGenerator()
	if err != nil {
		return err
	}
	res, err := g.Check()
	if err != nil {
		return fmt.Errorf("failed to check manifest: %w", err)
	}

	logging.Get(logger, logging.CategoryCheck).Debug("check complete",
		zap.String("destination", res.Destination),
		zap.Bool("exists", res.Exists),
		zap.Bool("up_to_date", res.UpToDate),
		zap.Int("added", len(res.Added)),
		zap.Int("removed", len(res.Removed)))

	out := cmd.OutOrStdout()
	styles := ui.NewStyles()
	if res.UpToDate {
		fmt.Fprintf(out, "%s %s (%d urls)\n", styles.Success.Render("Up to date"), res.Destination, len(res.Expected.URLs))
		return nil
	}

	switch {
	case !res.Exists:
		fmt.Fprintf(out, "%s %s does not exist\n", styles.Error.Render("Missing"), res.Destination)
	case res.Invalid:
		fmt.Fprintf(out, "%s %s is not a valid manifest\n", styles.Error.Render("Invalid"), res.Destination)
	case len(res.Added) == 0 && len(res.Removed) == 0:
		fmt.Fprintf(out, "%s %s lists the right paths but its formatting differs\n", styles.Warning.Render("Stale"), res.Destination)
	default:
		fmt.Fprintf(out, "%s %s\n", styles.Error.Render("Stale"), res.Destination)
	}
	for _, p := range res.Added {
		fmt.Fprintf(out, "  %s %s\n", styles.Success.Render("+"), p)
	}
	for _, p := range res.Removed {
		fmt.Fprintf(out, "  %s %s\n", styles.Error.Render("-"), p)
	}
	return errStale
}
