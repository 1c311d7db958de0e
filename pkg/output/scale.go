package output

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scale resizes img by an integer factor. Nearest-neighbour keeps hard pixel
// edges for inspecting small renders; smooth uses Catmull-Rom filtering.
// A factor below 2 returns img unchanged.
func Scale(img image.Image, factor int, smooth bool) image.Image {
	if factor < 2 {
		return img
	}

	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()*factor, src.Dy()*factor))

	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return dst
}
