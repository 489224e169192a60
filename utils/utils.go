package utils

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
)

// sniffLen is the number of header bytes needed by the file type matchers.
const sniffLen = 262

// DetectContentType reads the header of the file and returns its MIME type.
// Unknown content (e.g. a JSON document) is reported as "application/octet-stream".
func DetectContentType(fname string) (string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	return DetectReaderContentType(file)
}

// DetectReaderContentType is like DetectContentType but sniffs an already opened reader.
func DetectReaderContentType(r io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return SniffContentType(head[:n]), nil
}

// SniffContentType returns the MIME type of the provided header bytes.
func SniffContentType(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}

// IsImage reports whether the header bytes belong to a supported raster image.
func IsImage(head []byte) bool {
	return filetype.IsImage(head)
}

// ParseHexColor parses colors in the #rgb, #rrggbb or #rrggbbaa notation.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColor formats the color in the #rrggbbaa notation.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
