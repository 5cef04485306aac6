package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const maxImageDimension = 1600

// NormalizeImage decodes an uploaded JPEG/PNG/WebP, downscales anything
// wider or taller than maxImageDimension, and re-encodes as WebP so the
// landing page always serves one small format.
func NormalizeImage(data []byte) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// image.Decode only knows registered formats; try webp directly.
		img, err = webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("formato de imagen no soportado")
		}
	}

	img = downscale(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("codificar webp: %w", err)
	}
	return buf.Bytes(), "image/webp", nil
}

func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxImageDimension && h <= maxImageDimension {
		return img
	}

	scale := float64(maxImageDimension) / float64(w)
	if h > w {
		scale = float64(maxImageDimension) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
