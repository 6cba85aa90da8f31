package annotation

import (
	"fmt"

	"github.com/philipparndt/golabel/pkg/geometry"
	"github.com/philipparndt/golabel/pkg/yolo"
)

// FormatLine renders one box as a normalized label line
func FormatLine(b Box, imageWidth, imageHeight int) (string, error) {
	l, err := b.ToNormalizedLabel(imageWidth, imageHeight)
	if err != nil {
		return "", err
	}
	return l.String(), nil
}

// BoxFromLabel converts a normalized label into a pixel-space box
func BoxFromLabel(l yolo.Label, imageWidth, imageHeight int) Box {
	px := l.Unnormalize(imageWidth, imageHeight)
	return NewBox(
		geometry.NewVector2(px.XCenter, px.YCenter),
		geometry.NewVector2(px.Width, px.Height),
		px.ClassID,
	)
}

// BoxesFromLabels converts normalized labels into pixel-space boxes
func BoxesFromLabels(labels []yolo.Label, imageWidth, imageHeight int) []Box {
	boxes := make([]Box, 0, len(labels))
	for _, l := range labels {
		boxes = append(boxes, BoxFromLabel(l, imageWidth, imageHeight))
	}
	return boxes
}

// ToLabels normalizes boxes for persistence. Boxes without a usable extent
// are left out.
func ToLabels(boxes []Box, imageWidth, imageHeight int) ([]yolo.Label, error) {
	labels := make([]yolo.Label, 0, len(boxes))
	for _, b := range boxes {
		if b.IsDegenerate() {
			continue
		}
		l, err := b.ToNormalizedLabel(imageWidth, imageHeight)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// Encode renders boxes as a label document
func Encode(boxes []Box, imageWidth, imageHeight int) (string, error) {
	labels, err := ToLabels(boxes, imageWidth, imageHeight)
	if err != nil {
		return "", err
	}
	return yolo.Format(labels), nil
}

// Decode parses a label document into pixel-space boxes. Nothing is
// returned when any line is malformed.
func Decode(text string, imageWidth, imageHeight int) ([]Box, error) {
	if err := checkImageSize(imageWidth, imageHeight); err != nil {
		return nil, err
	}
	labels, err := yolo.Parse(text)
	if err != nil {
		return nil, err
	}
	return BoxesFromLabels(labels, imageWidth, imageHeight), nil
}

// LoadBoxes reads the label file of an image. A missing file yields no boxes.
func LoadBoxes(path string, imageWidth, imageHeight int) ([]Box, error) {
	if err := checkImageSize(imageWidth, imageHeight); err != nil {
		return nil, err
	}
	labels, err := yolo.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return BoxesFromLabels(labels, imageWidth, imageHeight), nil
}

// SaveBoxes writes boxes to a label file
func SaveBoxes(path string, boxes []Box, imageWidth, imageHeight int) error {
	labels, err := ToLabels(boxes, imageWidth, imageHeight)
	if err != nil {
		return fmt.Errorf("failed to normalize boxes: %w", err)
	}
	return yolo.WriteFile(path, labels)
}

func checkImageSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &yolo.FormatError{
			Reason: fmt.Sprintf("image size %dx%d", width, height),
			Err:    yolo.ErrDegenerateImage,
		}
	}
	return nil
}
