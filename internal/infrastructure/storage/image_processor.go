package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const ThumbnailSize = 300

type ImageProcessor struct {
	MaxSize int64 // bytes (default: 5MB)
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024}
}

// IsImageContentType: chỉ JPEG/PNG mới đi qua pipeline thumbnail
func IsImageContentType(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png"
}

// ValidateImage: JPEG/PNG, không vượt quá MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// Thumbnail resize vừa khung size×size, encode JPEG chất lượng 85
func (p *ImageProcessor) Thumbnail(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, size, size, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
