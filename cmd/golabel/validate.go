package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/philipparndt/golabel/pkg/imagelist"
	"github.com/philipparndt/golabel/pkg/yolo"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [image|dir]...",
	Short: "Check label files for format errors",
	Long:  "Parse the label file of every given image, or of every image in the given directories, and report malformed lines.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var images []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			images = append(images, arg)
			continue
		}
		list, err := imagelist.Scan(arg, false)
		if err != nil {
			return err
		}
		images = append(images, list.Paths()...)
	}

	checked, failed := 0, 0
	for _, image := range images {
		labelPath := yolo.LabelPath(image)
		labels, err := yolo.ReadFile(labelPath)
		if err != nil {
			failed++
			var fe *yolo.FormatError
			if errors.As(err, &fe) {
				fmt.Fprintf(out, "FAIL %s: %v\n", labelPath, fe)
			} else {
				fmt.Fprintf(out, "FAIL %s: %v\n", labelPath, err)
			}
			logger.Debug("invalid label file", "path", labelPath, "error", err)
			continue
		}
		if labels == nil {
			if _, err := os.Stat(labelPath); errors.Is(err, os.ErrNotExist) {
				continue
			}
		}
		checked++
		fmt.Fprintf(out, "ok   %s (%d boxes)\n", labelPath, len(labels))
	}

	fmt.Fprintf(out, "\n%d label files valid, %d invalid\n", checked, failed)
	if failed > 0 {
		return fmt.Errorf("%d invalid label files", failed)
	}
	return nil
}
