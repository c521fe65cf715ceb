// Package compose pastes a product packshot onto a generated background
// scene. The packshot keeps its alpha channel so transparent product shots
// blend into the scene instead of stamping a white box over it.
package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultScale is the fraction of the background width the packshot occupies.
// The prompt sent to the image model reserves the centre of the scene for
// exactly this footprint.
const DefaultScale = 0.45

// Center resizes the packshot to scale*background-width (height follows the
// packshot's aspect ratio, Lanczos resampling) and alpha-pastes it centered
// onto a copy of the background. The background itself is never mutated.
func Center(background, packshot image.Image, scale float64) *image.NRGBA {
	if scale <= 0 || scale > 1 {
		scale = DefaultScale
	}

	canvas := imaging.Clone(background)
	bgW := canvas.Bounds().Dx()
	bgH := canvas.Bounds().Dy()

	newW := int(float64(bgW) * scale)
	if newW < 1 {
		newW = 1
	}
	resized := imaging.Resize(packshot, newW, 0, imaging.Lanczos)

	x := (bgW - resized.Bounds().Dx()) / 2
	y := (bgH - resized.Bounds().Dy()) / 2
	return imaging.Overlay(canvas, resized, image.Pt(x, y), 1.0)
}
