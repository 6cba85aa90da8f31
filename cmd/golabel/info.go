package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/imageio"
	"github.com/philipparndt/golabel/pkg/yolo"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [image]",
	Short: "Display an image and its labels",
	Long:  "Show the image size, the label file and every box in pixel coordinates.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	stat, err := os.Stat(filename)
	if err != nil {
		return err
	}
	width, height, err := imageio.Dimensions(filename)
	if err != nil {
		return err
	}
	labelPath := yolo.LabelPath(filename)
	labels, err := yolo.ReadFile(labelPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Image Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Size: %d x %d pixels\n", width, height)
	fmt.Fprintf(out, "File Size: %s\n", humanize.Bytes(uint64(stat.Size())))
	fmt.Fprintf(out, "Modified: %s\n\n", humanize.Time(stat.ModTime()))

	fmt.Fprintln(out, "Labels:")
	fmt.Fprintf(out, "  File: %s\n", labelPath)
	if _, err := os.Stat(labelPath); err != nil {
		fmt.Fprintln(out, "  (no label file)")
		return nil
	}
	fmt.Fprintf(out, "  Boxes: %s\n", humanize.Comma(int64(len(labels))))

	perClass := map[int]int{}
	for _, l := range labels {
		perClass[l.ClassID]++
	}
	classes := make([]int, 0, len(perClass))
	for c := range perClass {
		classes = append(classes, c)
	}
	slices.Sort(classes)
	for _, c := range classes {
		fmt.Fprintf(out, "  Class %s: %d\n", cfg.ClassName(c), perClass[c])
	}

	if len(labels) > 0 {
		fmt.Fprintln(out, "\nBoxes (pixels):")
		for i, l := range labels {
			b := annotation.BoxFromLabel(l, width, height)
			lo, hi := b.Min(), b.Max()
			fmt.Fprintf(out, "  %3d  class %-8s  center (%.1f, %.1f)  size %.1f x %.1f  span (%.1f, %.1f)-(%.1f, %.1f)\n",
				i+1, cfg.ClassName(b.ClassID), b.Center.X, b.Center.Y, b.Width(), b.Height(), lo.X, lo.Y, hi.X, hi.Y)
		}
	}
	return nil
}
