package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/golabel/pkg/imageio"
	"github.com/philipparndt/golabel/pkg/yolo"
	"github.com/spf13/cobra"
)

var (
	convertTo    string
	convertFrom  string
	convertInput string
)

var convertCmd = &cobra.Command{
	Use:   "convert [image]",
	Short: "Print labels in pixel or normalized coordinates",
	Long: `Read the labels of an image and print them in the requested space.
By default the image's own label file is read as normalized labels; use
--input and --from pixels to normalize a file of pixel coordinates.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "pixels", "output space: pixels or normalized")
	convertCmd.Flags().StringVar(&convertFrom, "from", "normalized", "input space: pixels or normalized")
	convertCmd.Flags().StringVar(&convertInput, "input", "", "label file to read (default: the image's label file)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	for _, space := range []string{convertTo, convertFrom} {
		if space != "pixels" && space != "normalized" {
			return fmt.Errorf("unknown coordinate space %q (expected pixels or normalized)", space)
		}
	}

	image := args[0]
	width, height, err := imageio.Dimensions(image)
	if err != nil {
		return err
	}
	input := convertInput
	if input == "" {
		input = yolo.LabelPath(image)
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("no labels: %w", err)
	}
	labels, err := yolo.ReadFile(input)
	if err != nil {
		return err
	}

	out := make([]yolo.Label, 0, len(labels))
	for _, l := range labels {
		switch {
		case convertFrom == convertTo:
		case convertTo == "pixels":
			l = l.Unnormalize(width, height)
		default:
			if l, err = l.Normalize(width, height); err != nil {
				return err
			}
		}
		out = append(out, l)
	}
	fmt.Fprint(cmd.OutOrStdout(), yolo.Format(out))
	return nil
}
