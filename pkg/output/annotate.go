package output

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// CaptionSize is the font size of annotation text in pixels
const CaptionSize = 12

const captionPadding = 4

var captionBackground = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error
)

func newCaptionFace() (font.Face, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	if regularErr != nil {
		return nil, fmt.Errorf("failed to parse caption font: %w", regularErr)
	}

	face, err := opentype.NewFace(regularFont, &opentype.FaceOptions{
		Size:    CaptionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create caption face: %w", err)
	}
	return face, nil
}

// Annotate returns a copy of img with a caption strip appended below it.
// The source image is not modified. Text wider than the image is clipped.
func Annotate(img image.Image, caption string) (*image.RGBA, error) {
	face, err := newCaptionFace()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = face.Close()
	}()

	metrics := face.Metrics()
	stripHeight := metrics.Height.Ceil() + 2*captionPadding

	src := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()+stripHeight))
	draw.Draw(out, image.Rect(0, 0, src.Dx(), src.Dy()), img, src.Min, draw.Src)

	strip := image.Rect(0, src.Dy(), src.Dx(), out.Bounds().Dy())
	draw.Draw(out, strip, image.NewUniform(captionBackground), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  out,
		Src:  image.White,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(captionPadding),
			Y: fixed.I(src.Dy()+captionPadding) + metrics.Ascent,
		},
	}
	drawer.DrawString(caption)

	return out, nil
}
