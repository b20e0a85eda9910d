package mediastore

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

const (
	// PosterThumbnailWidth is the width clip posters are scaled down to.
	PosterThumbnailWidth = 640
	// MerchThumbnailWidth is the width merch images are scaled down to.
	MerchThumbnailWidth = 480

	thumbnailJPEGQuality = 85
)

// MakeThumbnail decodes an uploaded image and returns JPEG bytes resized to
// the given width, preserving aspect ratio. Upscaling is not performed.
func MakeThumbnail(original []byte, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(original), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return out.Bytes(), nil
}
