package service

import (
	"bytes"
	"fmt"
	"log"

	"github.com/disintegration/imaging"
)

const defaultPreviewWidth = 480

// OptimizePreview downsizes a screenshot to at most maxWidth pixels wide,
// keeping the aspect ratio, and re-encodes it as PNG
func OptimizePreview(imageData []byte, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = defaultPreviewWidth
	}

	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth {
		log.Printf("🔄 Resizing preview: %dx%d -> width %d", bounds.Dx(), bounds.Dy(), maxWidth)
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
