package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/golabel/internal/config"
	"github.com/philipparndt/golabel/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "golabel [image|dir]",
	Short: "Image viewer with a bounding box annotation editor",
	Long: `golabel shows the images of a folder and edits their YOLO label files.
Boxes are drawn, moved and resized with the mouse; labels are stored next to
each image as a .txt file with one normalized box per line.`,
	Version:           version.GetFullVersion(),
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runView,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the settings file)")
}

// setup loads the settings and creates the logger shared by all commands
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	level := cfg.Level()
	if logLevel != "" {
		level, err = config.ParseLevel(logLevel)
		if err != nil {
			return err
		}
	}
	logger = NewLogger(os.Stderr, level)
	logger.Debug("settings loaded", "path", configPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
