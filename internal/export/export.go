// Package export flattens the drawing layer over its background and encodes it
// for download, files and the clipboard.
package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/bethropolis/doodle/internal/palette"
	"github.com/bethropolis/doodle/internal/storage"
	"golang.org/x/image/draw"
)

// DefaultBackground is used when no background color has been stored.
var DefaultBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}

// ErrNoDrawing is returned when the store holds no drawing yet.
var ErrNoDrawing = errors.New("export: no drawing stored")

// Flatten composites the drawing layer over a solid background into a new image.
func Flatten(layer image.Image, bg color.Color) *image.RGBA {
	b := layer.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), layer, b.Min, draw.Over)
	return dst
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("export: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG decodes a PNG blob into an RGBA image anchored at the origin.
func DecodePNG(blob []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("export: decode png: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// DataURL wraps a PNG blob as a "data:image/png;base64,..." string.
func DataURL(pngBlob []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBlob)
}

// LoadBackground reads the stored background color, falling back to DefaultBackground.
func LoadBackground(store storage.Store) (color.RGBA, error) {
	blob, ok, err := store.Load(storage.KeyBackground)
	if err != nil {
		return DefaultBackground, err
	}
	if !ok {
		return DefaultBackground, nil
	}
	return palette.Parse(string(blob))
}

// FromStore builds the flattened PNG of the persisted drawing. It only reads the
// store, so it is safe to call from goroutines other than the UI loop.
func FromStore(store storage.Store) ([]byte, error) {
	blob, ok, err := store.Load(storage.KeyDrawing)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoDrawing
	}
	layer, err := DecodePNG(blob)
	if err != nil {
		return nil, err
	}
	bg, err := LoadBackground(store)
	if err != nil {
		return nil, fmt.Errorf("export: background: %w", err)
	}
	return EncodePNG(Flatten(layer, bg))
}

// WriteFile writes data to path via a temporary file and rename.
func WriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("export: write '%s': %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("export: rename '%s': %w", path, err)
	}
	return nil
}
