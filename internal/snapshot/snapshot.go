// Package snapshot encodes framebuffer captures to image files.
package snapshot

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// FromFramebuffer converts bottom-up RGBA rows, as returned by glReadPixels, into a
// top-down image.
func FromFramebuffer(pixels []byte, width, height int) (*image.RGBA, error) {
	stride := width * 4
	if width <= 0 || height <= 0 || len(pixels) < stride*height {
		return nil, errors.Errorf("snapshot: %d bytes for %dx%d framebuffer", len(pixels), width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*stride : (height-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img, nil
}

type encodeFunc func(w io.Writer, img image.Image) error

func encoder(format string) (encodeFunc, error) {
	switch strings.ToLower(format) {
	case "bmp":
		return bmp.Encode, nil
	case "tif", "tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, errors.Errorf("snapshot: unsupported format %q", format)
}

// Encode writes img as BMP or TIFF, chosen by format ("bmp", "tif", "tiff").
func Encode(w io.Writer, img image.Image, format string) error {
	enc, err := encoder(format)
	if err != nil {
		return err
	}
	return enc(w, img)
}

// Save writes the framebuffer to path, picking the encoder from its extension.
// Nothing is created when the extension or the pixel buffer is rejected.
func Save(path string, pixels []byte, width, height int) error {
	enc, err := encoder(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}
	img, err := FromFramebuffer(pixels, width, height)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	if err := enc(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrap(err, "snapshot")
	}
	return errors.Wrap(f.Close(), "snapshot")
}
