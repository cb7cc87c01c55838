// Package normalize downsamples cached images that exceed the display's
// target box. Scaling is cover-style: the scale factor is the larger of the
// two per-axis ratios, so one dimension lands exactly on the target and the
// other meets or exceeds it. The display crops, it never letterboxes.
package normalize

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const jpegQuality = 90

// Sweep walks every cached image under root and resizes those larger than
// the target box in place. A failure on one file is logged and skipped; the
// walk always completes. Runs single-threaded after the build pass, local
// disk only.
func Sweep(root string, targetWidth, targetHeight int, logger *zap.Logger) error {
	logger.Info("Checking cached images for oversized files",
		zap.String("root", root),
		zap.Int("target_width", targetWidth),
		zap.Int("target_height", targetHeight),
	)

	resized := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasImageExt(d.Name()) {
			return nil
		}
		changed, err := normalizeFile(path, targetWidth, targetHeight, logger)
		if err != nil {
			logger.Warn("Could not resize image", zap.String("path", path), zap.Error(err))
			return nil
		}
		if changed {
			resized++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk cache dir %s: %w", root, err)
	}

	logger.Info("Image normalization complete", zap.Int("resized", resized))
	return nil
}

func normalizeFile(path string, targetWidth, targetHeight int, logger *zap.Logger) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open: %w", err)
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return false, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= targetWidth && h <= targetHeight {
		return false, nil
	}

	// Cover scale: the larger ratio guarantees both axes still fill the box.
	scale := float64(targetWidth) / float64(w)
	if s := float64(targetHeight) / float64(h); s > scale {
		scale = s
	}
	newWidth := int(math.Round(float64(w) * scale))
	newHeight := int(math.Round(float64(h) * scale))

	logger.Info("Downscaling image",
		zap.String("file", filepath.Base(path)),
		zap.String("from", fmt.Sprintf("%dx%d", w, h)),
		zap.String("to", fmt.Sprintf("%dx%d", newWidth, newHeight)),
	)

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", format, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o640); err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	return true, nil
}

func hasImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
