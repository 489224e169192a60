package utils

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_MinMaxClamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))
	assert.Equal(float32(0.5), Max(float32(0.5), float32(-1)))
	assert.Equal(3, Abs(-3))
	assert.Equal(1.0, Clamp(1.7, 0, 1))
	assert.Equal(0.0, Clamp(-0.2, 0, 1))
	assert.Equal(0.4, Clamp(0.4, 0, 1))
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/pigment/"))
	assert.False(t, IsValidUrl("testdata/sample.png"))
	assert.False(t, IsValidUrl("-"))
}

func TestUtils_HexColor(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseHexColor("#ff000080")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0xff, A: 0x80}, c)

	c, err = ParseHexColor("00ff00")
	assert.NoError(err)
	assert.Equal(color.NRGBA{G: 0xff, A: 0xff}, c)

	c, err = ParseHexColor("#fff")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(err)
	_, err = ParseHexColor("#gggggg")
	assert.Error(err)

	assert.Equal("#0a0b0cff", HexColor(color.NRGBA{R: 10, G: 11, B: 12, A: 255}))
}

func TestUtils_ShouldDetectContentType(t *testing.T) {
	assert := assert.New(t)

	// Minimal PNG signature followed by the IHDR chunk header.
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	assert.True(IsImage(png))
	assert.Equal("image/png", SniffContentType(png))

	doc := []byte(`{"width":1,"height":1}`)
	assert.False(IsImage(doc))
	assert.Equal("application/octet-stream", SniffContentType(doc))

	fname := filepath.Join(t.TempDir(), "doc.pigment")
	assert.NoError(os.WriteFile(fname, doc, 0644))
	ctype, err := DetectContentType(fname)
	assert.NoError(err)
	assert.Equal("application/octet-stream", ctype)

	_, err = DetectContentType(filepath.Join(t.TempDir(), "missing"))
	assert.Error(err)
}

func TestUtils_FormatTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0.25s", FormatTime(250*time.Millisecond))
	assert.Equal("2m 3.00s", FormatTime(2*time.Minute+3*time.Second))
	assert.Equal("1h 5m 0.00s", FormatTime(time.Hour+5*time.Minute))
	assert.Equal("1d 2h 0m 0.00s", FormatTime(26*time.Hour))
}

func TestUtils_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"boom"+DefaultColor, DecorateText("boom", ErrorMessage))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
}
