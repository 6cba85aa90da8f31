package main

import (
	"github.com/philipparndt/golabel/internal/app"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [image|dir]",
	Short: "Open the annotation editor",
	Long:  "Open an image, or the first image of a directory, in the annotation editor window.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return app.Run(app.Options{Path: path, Config: cfg, Logger: logger})
}
