package render

import (
	"bytes"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/titlecard/pkg/errors"
)

// Format is an output image encoding.
type Format string

// Supported output formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 90

// ParseFormat parses a format name. The empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q (want png or jpeg)", s)
	}
}

// FormatFromPath infers the format from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "output %s", path)
	}
	switch f {
	case imaging.PNG:
		return PNG, nil
	case imaging.JPEG:
		return JPEG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %s for %s", f, path)
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

// ContentType returns the MIME type.
func (f Format) ContentType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "encode %s", f)
	}
	return nil
}

// EncodeBytes encodes img and returns the bytes.
func EncodeBytes(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
