package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"assetmanifest/internal/config"
	"assetmanifest/internal/logging"
	"assetmanifest/internal/manifest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose         bool
	configPath      string
	workspace       string
	sourcePattern   string
	destinationPath string
	outputFormat    string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// skipConfigAnnotation marks commands that must run even when the config
// file is invalid.
const skipConfigAnnotation = "assetmanifest/skip-config"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "assetmanifest",
	Short: "Generate the JSON manifest of geometry assets",
	Long: `assetmanifest lists the entries matching a glob pattern and writes their
paths to a JSON manifest of the form {"urls": [...]}.

Run without arguments to regenerate ./assets/geometry/objects.json from
./assets/geometry/objects/*. The manifest is always rewritten in full.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGenerate,
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "assetmanifest %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./"+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&sourcePattern, "source", "s", "", "Glob pattern of entries to list (default \""+manifest.DefaultSourcePattern+"\")")
	rootCmd.PersistentFlags().StringVarP(&destinationPath, "dest", "o", "", "Manifest file to write (default \""+manifest.DefaultDestinationPath+"\")")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format: compact or indent (default \"compact\")")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints a diagnostic naming the failed path operation.
func reportError(w io.Writer, err error) {
	if errors.Is(err, errStale) {
		fmt.Fprintln(w, "Error:", err)
		return
	}
	if fsErr, ok := manifest.IsFileSystemError(err); ok {
		fmt.Fprintf(w, "Error: %s %s: %v\n", fsErr.Op, fsErr.Path, fsErr.Err)
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// setup changes into the workspace, loads the config, applies flag
// overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if workspace != "" {
		if err := os.Chdir(workspace); err != nil {
			return fmt.Errorf("failed to enter workspace: %w", err)
		}
	}

	if cmd.Annotations[skipConfigAnnotation] == "true" {
		var err error
		logger, err = logging.New(config.DefaultLoggingConfig(), verbose)
		return err
	}

	loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg = loaded

	logger, err = logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	logging.Get(logger, logging.CategoryBoot).Debug("configuration loaded",
		zap.String("source_pattern", cfg.SourcePattern),
		zap.String("destination_path", cfg.DestinationPath),
		zap.String("format", cfg.Format))
	return nil
}

// loadConfig reads the config file and applies flag overrides. An explicit
// --config must exist; the default file is optional.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigFile
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		c.SourcePattern = sourcePattern
	}
	if flags.Changed("dest") {
		c.DestinationPath = destinationPath
	}
	if flags.Changed("format") {
		c.Format = outputFormat
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}
