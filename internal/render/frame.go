package render

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// LabelFontSize is the pixel size used for overlay labels.
const LabelFontSize = 12.0

// NewFrame allocates a software canvas for one viewport.
func NewFrame(width, height int) *gg.Context {
	return gg.NewContext(width, height)
}

// LoadLabelFace parses the embedded Go Regular font at the given size.
func LoadLabelFace(size float64) (text.Face, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	return src.Face(size), nil
}

// EncodePNG returns the frame's pixels as PNG bytes.
func EncodePNG(frame *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := frame.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
