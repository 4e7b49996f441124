// AngelaMos | 2026
// compress.go

package asset

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"
)

const jpegQuality = 80

// recompress re-encodes png and jpeg uploads for storage efficiency. It
// returns the original bytes unless re-encoding both succeeds and shrinks
// the payload; callers treat any error as advisory.
func recompress(filename string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var out bytes.Buffer
	switch ext {
	case ".png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return data, fmt.Errorf("decode png: %w", err)
		}
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		if err := encoder.Encode(&out, img); err != nil {
			return data, fmt.Errorf("encode png: %w", err)
		}
	case ".jpg", ".jpeg":
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return data, fmt.Errorf("decode jpeg: %w", err)
		}
		if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return data, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		// gif and svg pass through untouched.
		return data, nil
	}

	if out.Len() >= len(data) {
		return data, nil
	}

	return out.Bytes(), nil
}
