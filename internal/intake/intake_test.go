package intake

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func TestResolveExt(t *testing.T) {
	require.Equal(t, ".png", resolveExt("WoWScrnShot_012525_203104.png", ""))
	require.Equal(t, ".jpg", resolveExt("shot.JPG", ""))
	require.Equal(t, ".png", resolveExt("upload", "image/png"))
	require.Equal(t, ".jpg", resolveExt("upload.bin", "image/jpeg; charset=binary"))
	require.Equal(t, ".tga", resolveExt("WoWScrnShot_012525_203104.tga", "application/octet-stream"))
	require.Equal(t, "", resolveExt("malware.exe", "application/x-msdownload"))
	require.Equal(t, "", resolveExt("shot.bmp", "image/bmp"))
}

func TestStoreRejectsUnsupportedType(t *testing.T) {
	in := New(t.TempDir(), "/uploads", testLogger())

	_, err := in.Store([]byte("payload"), "application/pdf", "report.pdf")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStoreKeepsPNGVerbatim(t *testing.T) {
	dir := t.TempDir()
	in := New(dir, "/uploads", testLogger())

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	url, err := in.Store(buf.Bytes(), "image/png", "WoWScrnShot.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	require.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	require.Equal(t, buf.Bytes(), stored)
}

func TestStoreConvertsTGAToPNG(t *testing.T) {
	dir := t.TempDir()
	in := New(dir, "/uploads", testLogger())

	var buf bytes.Buffer
	require.NoError(t, tga.Encode(&buf, testImage()))

	url, err := in.Store(buf.Bytes(), "image/x-tga", "WoWScrnShot.tga")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	require.Equal(t, 4, img.Bounds().Dx())
}

func TestStoreFallsBackOnBrokenTGA(t *testing.T) {
	dir := t.TempDir()
	in := New(dir, "/uploads", testLogger())

	garbage := []byte("definitely not a tga file")
	url, err := in.Store(garbage, "image/x-tga", "broken.tga")
	require.NoError(t, err)
	require.Equal(t, "/uploads/broken.tga", url)

	stored, err := os.ReadFile(filepath.Join(dir, "broken.tga"))
	require.NoError(t, err)
	require.Equal(t, garbage, stored)
}
