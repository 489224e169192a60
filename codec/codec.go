// Package codec reads and writes paint documents.
//
// Two families of formats are supported. The native format is a JSON document
// preserving every layer with its name and visibility, together with the
// session colors and brush sizes. Flat formats (PNG, JPEG, BMP, GIF and TIFF)
// store the composite image only and load back as a single layer.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/pigment/canvas"
	"github.com/esimov/pigment/utils"
)

// NativeExt is the file extension of the native document format.
const NativeExt = ".pigment"

// Default session values assigned to documents loaded from flat images.
const (
	DefaultBrushSize  = 3
	DefaultEraserSize = 3
)

var (
	// ErrRead reports a document whose bytes could not be read.
	ErrRead = errors.New("could not read bytes")
	// ErrMalformed reports a document whose structure could not be parsed.
	ErrMalformed = errors.New("could not parse structure")
)

// Error records a failed codec operation.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "codec: " + e.Op + ": " + e.Err.Error()
	}
	return "codec: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Document is a canvas together with the session state persisted alongside it.
type Document struct {
	Canvas     *canvas.Canvas
	Primary    color.NRGBA
	Secondary  color.NRGBA
	Saved      []color.NRGBA
	BrushSize  int
	EraserSize int
}

// NewDocument wraps c using the default session values.
func NewDocument(c *canvas.Canvas) *Document {
	return &Document{
		Canvas:     c,
		Primary:    color.NRGBA{A: 0xff},
		Secondary:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		BrushSize:  DefaultBrushSize,
		EraserSize: DefaultEraserSize,
	}
}

// Format identifies a file format.
type Format string

// Supported formats.
const (
	Native Format = "pigment"
	PNG    Format = "png"
	JPEG   Format = "jpeg"
	BMP    Format = "bmp"
	GIF    Format = "gif"
	TIFF   Format = "tiff"
)

var imagingFormats = map[imaging.Format]Format{
	imaging.PNG:  PNG,
	imaging.JPEG: JPEG,
	imaging.BMP:  BMP,
	imaging.GIF:  GIF,
	imaging.TIFF: TIFF,
}

// FormatFromPath resolves the format from the file extension.
// It reports false when the extension is not recognized.
func FormatFromPath(path string) (Format, bool) {
	if strings.EqualFold(filepath.Ext(path), NativeExt) {
		return Native, true
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", false
	}
	format, ok := imagingFormats[f]
	return format, ok
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	if format == Native {
		return EncodeNative(w, doc)
	}
	return EncodeFlat(w, doc.Canvas, format)
}

// Decode reads a document from r. Image content is detected by sniffing the
// leading bytes and loaded as a single layer, everything else is decoded as a
// native document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Op: "decode", Err: fmt.Errorf("%w: %w", ErrRead, err)}
	}
	if !utils.IsImage(data) {
		return DecodeNative(bytes.NewReader(data))
	}
	c, err := DecodeFlat(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewDocument(c), nil
}

// SaveFile writes doc to path, choosing the format from the extension. Paths
// without a known extension are saved in the native format with NativeExt
// appended. It returns the path actually written.
func SaveFile(path string, doc *Document) (string, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		path += NativeExt
		format = Native
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &Error{Op: "save", Path: path, Err: err}
	}
	err = Encode(f, doc, format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", withPath(err, "save", path)
	}
	return path, nil
}

// LoadFile reads the document stored at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: "load", Path: path, Err: fmt.Errorf("%w: %w", ErrRead, err)}
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, withPath(err, "load", path)
	}
	doc.Canvas.MarkSaved()

	return doc, nil
}

// withPath attaches path to a codec error, wrapping foreign errors.
func withPath(err error, op, path string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Path = path
		return e
	}
	return &Error{Op: op, Path: path, Err: err}
}
