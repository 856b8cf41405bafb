package overlay

import (
	"image"
	"image/color"
)

// Palette for feedback drawing.
var (
	ColorCorrect = color.RGBA{R: 46, G: 204, B: 113, A: 255} // green
	ColorWrong   = color.RGBA{R: 231, G: 76, B: 60, A: 255}  // red
	ColorAmber   = color.RGBA{R: 241, G: 196, B: 15, A: 255}
	ColorSegment = color.RGBA{R: 46, G: 204, B: 113, A: 255}
	ColorLabel   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Accuracy badge color bands.
const (
	badgeGreenFloor = 80
	badgeAmberFloor = 50
)

// Joint marker radius bounds in pixels.
const (
	minJointRadius = 6
	maxJointRadius = 12
)

// Scale maps reference-resolution pixel coordinates onto the drawing
// surface's backing size.
type Scale struct {
	X float64
	Y float64
}

// NewScale builds the mapping from the reference resolution to the
// surface size. Degenerate reference dimensions map 1:1.
func NewScale(refW, refH, dstW, dstH int) Scale {
	s := Scale{X: 1, Y: 1}
	if refW > 0 && dstW > 0 {
		s.X = float64(dstW) / float64(refW)
	}
	if refH > 0 && dstH > 0 {
		s.Y = float64(dstH) / float64(refH)
	}
	return s
}

// Point maps one reference-space coordinate pair to a surface pixel.
func (s Scale) Point(x, y float64) image.Point {
	return image.Pt(int(x*s.X+0.5), int(y*s.Y+0.5))
}

// JointRadius scales the joint marker to the surface width, clamped to
// [6,12] pixels.
func JointRadius(surfaceWidth int) int {
	r := surfaceWidth / 80
	if r < minJointRadius {
		return minJointRadius
	}
	if r > maxJointRadius {
		return maxJointRadius
	}
	return r
}

// BadgeColor buckets an accuracy percentage: green for 80 and above,
// amber for 50 and above, red below.
func BadgeColor(accuracy float64) color.RGBA {
	switch {
	case accuracy >= badgeGreenFloor:
		return ColorCorrect
	case accuracy >= badgeAmberFloor:
		return ColorAmber
	default:
		return ColorWrong
	}
}

// JointColor is a pure function of the correctness flag; a joint carries
// no drawing state of its own.
func JointColor(isCorrect bool) color.RGBA {
	if isCorrect {
		return ColorCorrect
	}
	return ColorWrong
}

// BadgeRect places the accuracy badge in the surface's top-right corner.
func BadgeRect(surfaceWidth int) image.Rectangle {
	const (
		badgeW      = 96
		badgeH      = 36
		badgeMargin = 12
	)
	x1 := surfaceWidth - badgeMargin - badgeW
	if x1 < 0 {
		x1 = 0
	}
	return image.Rect(x1, badgeMargin, x1+badgeW, badgeMargin+badgeH)
}
