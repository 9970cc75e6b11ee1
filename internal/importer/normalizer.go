package importer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

const defaultNormalizeAttempts = 3

// Normalizer bounds images to a square canvas. Images already within the
// bound pass through unchanged; larger images are scaled to fit with their
// aspect ratio preserved and padded onto a white square canvas of the bound's
// size, encoded as PNG. The whole operation is a pure function over the input
// bytes; callers own any storage side effects.
type Normalizer struct {
	maxDimension int
	attempts     int
}

func NewNormalizer(maxDimension int) *Normalizer {
	return &Normalizer{
		maxDimension: maxDimension,
		attempts:     defaultNormalizeAttempts,
	}
}

// Normalize returns the bounded image bytes and the output format name
// ("png", "jpeg", ...). Image library failures are occasionally transient
// I/O errors rather than content errors, so the operation is retried a
// fixed number of times before being reported as permanent.
func (n *Normalizer) Normalize(data []byte) ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= n.attempts; attempt++ {
		out, format, err := n.normalizeOnce(data)
		if err != nil {
			lastErr = err
			continue
		}
		return out, format, nil
	}
	return nil, "", fmt.Errorf("image normalization failed after %d attempts: %w", n.attempts, lastErr)
}

func (n *Normalizer) normalizeOnce(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= n.maxDimension && bounds.Dy() <= n.maxDimension {
		// Decoding above already proves the passthrough bytes are valid.
		return data, format, nil
	}

	side := n.maxDimension
	width, height := bounds.Dx(), bounds.Dy()
	var scaledW, scaledH int
	if width >= height {
		scaledW = side
		scaledH = height * side / width
	} else {
		scaledH = side
		scaledW = width * side / height
	}
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	offsetX := (side - scaledW) / 2
	offsetY := (side - scaledH) / 2
	target := image.Rect(offsetX, offsetY, offsetX+scaledW, offsetY+scaledH)
	xdraw.CatmullRom.Scale(canvas, target, img, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, "", fmt.Errorf("encode normalized image: %w", err)
	}

	// Verify the output decodes before declaring success so a corrupt file
	// is never persisted.
	if _, _, err := image.Decode(bytes.NewReader(buf.Bytes())); err != nil {
		return nil, "", fmt.Errorf("verify normalized image: %w", err)
	}

	return buf.Bytes(), "png", nil
}
