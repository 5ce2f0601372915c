package imgcrop

import (
	"image"
	"image/color"
)

// Bounds returns the smallest rectangle holding every non-empty pixel of
// img, and false when there is none.
//
// Pixel formats that carry alpha (including RGB, which the png encoder
// writes for any fully opaque RGBA image) treat a pixel as empty when it
// is fully transparent. Formats without alpha (grey, CMYK, YCbCr) treat a
// pixel as empty when every channel is zero, and a paletted image without
// any transparent entry treats index 0 as empty.
func Bounds(img image.Image) (image.Rectangle, bool) {
	b := img.Bounds()
	filled := filledFunc(img)

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	found := false

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !filled(x, y) {
				continue
			}

			found = true
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x+1)
			maxY = max(maxY, y+1)
		}
	}

	if !found {
		return image.Rectangle{}, false
	}

	return image.Rect(minX, minY, maxX, maxY), true
}

func filledFunc(img image.Image) func(x, y int) bool {
	switch m := img.(type) {
	case *image.NRGBA:
		return func(x, y int) bool { return m.Pix[m.PixOffset(x, y)+3] != 0 }
	case *image.RGBA:
		return func(x, y int) bool { return m.Pix[m.PixOffset(x, y)+3] != 0 }
	case *image.Paletted:
		if !hasTransparency(m.Palette) {
			return func(x, y int) bool { return m.ColorIndexAt(x, y) != 0 }
		}
	case *image.Gray:
		return func(x, y int) bool { return m.GrayAt(x, y).Y != 0 }
	case *image.Gray16:
		return func(x, y int) bool { return m.Gray16At(x, y).Y != 0 }
	case *image.CMYK:
		return func(x, y int) bool {
			c := m.CMYKAt(x, y)
			return c.C|c.M|c.Y|c.K != 0
		}
	case *image.YCbCr:
		return nonZeroRGB(img)
	}

	return func(x, y int) bool {
		_, _, _, a := img.At(x, y).RGBA()
		return a != 0
	}
}

func hasTransparency(p color.Palette) bool {
	for _, c := range p {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return true
		}
	}
	return false
}

func nonZeroRGB(img image.Image) func(x, y int) bool {
	return func(x, y int) bool {
		r, g, b, _ := img.At(x, y).RGBA()
		return r|g|b != 0
	}
}
