package snapshot

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// 2x2 framebuffer: bottom row red, top row blue
var framebuffer = []byte{
	255, 0, 0, 255, 255, 0, 0, 255,
	0, 0, 255, 255, 0, 0, 255, 255,
}

func TestFromFramebufferFlipsRows(t *testing.T) {
	img, err := FromFramebuffer(framebuffer, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(1, 1))

	_, err = FromFramebuffer(framebuffer[:4], 2, 2)
	assert.Error(t, err)
}

func TestEncodeBMPKeepsOrientation(t *testing.T) {
	img, err := FromFramebuffer(framebuffer, 2, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, "BMP"))
	decoded, err := bmp.Decode(&buf)
	require.NoError(t, err)

	r, g, b, _ := decoded.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff}, []uint32{r, g, b})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, "frame.tiff"), framebuffer, 2, 2))
	info, err := os.Stat(filepath.Join(dir, "frame.tiff"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = Save(filepath.Join(dir, "frame.gif"), framebuffer, 2, 2)
	assert.ErrorContains(t, err, "unsupported format")
	_, err = os.Stat(filepath.Join(dir, "frame.gif"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsFormatBeforeCreating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	err := Save(path, make([]byte, 2*2*4), 2, 2)
	assert.ErrorContains(t, err, "unsupported format")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data), "existing file left untouched")
}
