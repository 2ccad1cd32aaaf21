package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// jpegQuality is used for every re-encoded cover image.
const jpegQuality = 90

// ImageService prepares cover art for embedding in audio tags and for
// saving next to the album.
//
// Example usage:
//
//	svc := NewImageService()
//	cover, err := svc.PrepareCover(ctx, downloaded, 500)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCover decodes data, scales it down to fit within maxSize×maxSize
// when larger, and returns it JPEG encoded. A maxSize of 0 keeps the
// original dimensions.
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if maxSize > 0 {
		return s.ResizeImage(ctx, data, maxSize, maxSize)
	}
	return s.ConvertToJPEG(ctx, data)
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and images that already fit are only
// re-encoded. The Catmull-Rom kernel is used for scaling.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x667
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(dst)
}

// ConvertToJPEG converts an image to JPEG format.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img)
}

// fitWithin returns width and height scaled down to fit the bounds,
// keeping the aspect ratio.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
