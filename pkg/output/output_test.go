package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// gradientImage builds an opaque test pattern with distinct pixels
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 40), B: 0x80, A: 0xff})
		}
	}
	return img
}

func samePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	if want.Bounds().Size() != got.Bounds().Size() {
		t.Fatalf("Expected size %v, got %v", want.Bounds().Size(), got.Bounds().Size())
	}
	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			w := color.RGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			g := color.RGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			if w != g {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, w, g)
			}
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{".bmp", FormatBMP, false},
		{"tif", FormatTIFF, false},
		{"tiff", FormatTIFF, false},
		{"jpg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("output/default/render.TIF"); err != nil || f != FormatTIFF {
		t.Errorf("Expected tiff, got %q (%v)", f, err)
	}
	if _, err := FormatFromPath("output/render"); err == nil {
		t.Error("Expected error for path without extension")
	}
}

func TestFormatMetadata(t *testing.T) {
	tests := []struct {
		format      Format
		extension   string
		contentType string
	}{
		{FormatPNG, ".png", "image/png"},
		{FormatBMP, ".bmp", "image/bmp"},
		{FormatTIFF, ".tiff", "image/tiff"},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.extension {
			t.Errorf("%s extension: expected %q, got %q", tt.format, tt.extension, got)
		}
		if got := tt.format.ContentType(); got != tt.contentType {
			t.Errorf("%s content type: expected %q, got %q", tt.format, tt.contentType, got)
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	img := gradientImage(5, 4)

	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		FormatPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		FormatBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		FormatTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := decoders[format](bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			samePixels(t, img, decoded)
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, gradientImage(1, 1), Format("gif")); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing written, got %d bytes", buf.Len())
	}
}

func TestSave_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "default", "render.png")
	img := gradientImage(3, 2)

	if err := Save(path, img); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected file at %s: %v", path, err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	samePixels(t, img, decoded)
}

func TestSave_RejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.jpg")
	if err := Save(path, gradientImage(1, 1)); err == nil {
		t.Error("Expected error for .jpg")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No file should be created for an unsupported format")
	}
}

func TestScale_NearestNeighbor(t *testing.T) {
	img := gradientImage(3, 2)
	scaled := Scale(img, 4, false)

	if size := scaled.Bounds().Size(); size != image.Pt(12, 8) {
		t.Fatalf("Expected 12x8, got %v", size)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			want := img.RGBAAt(x/4, y/4)
			if got := color.RGBAModel.Convert(scaled.At(x, y)); got != want {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestScale_Smooth(t *testing.T) {
	scaled := Scale(gradientImage(4, 4), 2, true)
	if size := scaled.Bounds().Size(); size != image.Pt(8, 8) {
		t.Errorf("Expected 8x8, got %v", size)
	}
}

func TestScale_FactorOneIsIdentity(t *testing.T) {
	img := gradientImage(2, 2)
	for _, factor := range []int{-1, 0, 1} {
		if got := Scale(img, factor, false); got != image.Image(img) {
			t.Errorf("Factor %d should return the source image", factor)
		}
	}
}

func TestAnnotate(t *testing.T) {
	img := gradientImage(160, 20)

	out, err := Annotate(img, "Render time: 12ms")
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	if out.Bounds().Dx() != 160 || out.Bounds().Dy() <= 20 {
		t.Fatalf("Expected caption strip below a 160x20 image, got %v", out.Bounds())
	}
	samePixels(t, img, out.SubImage(image.Rect(0, 0, 160, 20)))

	// Text pixels are brighter than the strip background
	lit := false
	for y := 20; y < out.Bounds().Dy() && !lit; y++ {
		for x := 0; x < 160; x++ {
			if out.RGBAAt(x, y).R > captionBackground.R {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("Expected caption text in the strip")
	}
}

func TestAnnotate_EmptyCaption(t *testing.T) {
	out, err := Annotate(gradientImage(10, 10), "")
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	for y := 10; y < out.Bounds().Dy(); y++ {
		for x := 0; x < 10; x++ {
			if got := out.RGBAAt(x, y); got != captionBackground {
				t.Fatalf("Pixel (%d,%d): expected background %v, got %v", x, y, captionBackground, got)
			}
		}
	}
}

func TestAnnotate_DoesNotModifySource(t *testing.T) {
	img := gradientImage(40, 8)
	before := append([]uint8(nil), img.Pix...)

	if _, err := Annotate(img, "stats"); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if !bytes.Equal(before, img.Pix) {
		t.Error("Source image was modified")
	}
}
