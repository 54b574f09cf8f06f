package main

import (
	"fmt"

	"assetmanifest/cmd/assetmanifest/ui"

	"github.com/spf13/cobra"
)

var listPlain bool

// listCmd previews the manifest without writing it
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the paths that would be written, without writing",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Print one path per line")
}

func runList(cmd *cobra.Command, args []string) error {
	g, err := newGenerator()
	if err != nil {
		return err
	}
	m, err := g.Collect()
	if err != nil {
		return fmt.Errorf("failed to list source: %w", err)
	}

	out := cmd.OutOrStdout()
	if listPlain {
		for _, u := range m.URLs {
			fmt.Fprintln(out, u)
		}
		return nil
	}

	styles := ui.NewStyles()
	table := ui.NewPathTable(fmt.Sprintf("%s (%d matches)", g.SourcePattern(), len(m.URLs)))
	table.Add(m.URLs...)
	fmt.Fprint(out, table.View(styles))
	if len(m.URLs) == 0 {
		fmt.Fprintln(out, styles.Muted.Render("No entries match; the manifest would be {\"urls\": []}."))
	}
	return nil
}
