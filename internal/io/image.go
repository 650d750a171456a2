package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Genius serves some artwork as WebP
)

// ImageService prepares cover art for embedding into audio files.
//
// Example usage:
//
//	svc := NewImageService()
//	resized, _ := svc.ResizeImage(artwork, 500, 500)
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService encoding JPEG at quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// ResizeImage scales an image down to fit within maxWidth x maxHeight.
//
// The aspect ratio is preserved and smaller images are not enlarged. The
// result is always JPEG-encoded. Catmull-Rom is used for scaling.
//
// Example:
//
//	resized, err := svc.ResizeImage(imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *ImageService) ResizeImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return s.encode(dst)
}

// ConvertToJPEG re-encodes an image as JPEG.
func (s *ImageService) ConvertToJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.encode(img)
}

func (s *ImageService) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitWithin returns width x height scaled down to fit the bounds.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if maxWidth <= 0 || maxHeight <= 0 || (width <= maxWidth && height <= maxHeight) {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return int(float64(maxHeight) * ratio), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, int(float64(maxWidth) / ratio)
}
