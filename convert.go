package imgrotate

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DecodeOption sets an optional parameter for Decode.
type DecodeOption func(*imagingDecode)

type imagingDecode struct {
	orient bool
}

// AutoOrientation controls whether Decode applies the EXIF orientation tag
// of JPEG input. It is enabled by default.
func AutoOrientation(enabled bool) DecodeOption {
	return func(d *imagingDecode) { d.orient = enabled }
}

// Decode reads an image in any registered format from r. Custom formats
// must be registered with the image package before calling it.
func Decode(r io.Reader, opts ...DecodeOption) (image.Image, error) {
	d := imagingDecode{orient: true}
	for _, o := range opts {
		o(&d)
	}
	return imaging.Decode(r, imaging.AutoOrientation(d.orient))
}

// DecodeConfig returns the dimensions of the image in r without decoding
// its pixels, along with the registered format name.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	cfg, name, err := image.DecodeConfig(r)
	if err != nil {
		return cfg, name, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, name, ErrEmptySource
	}
	return cfg, name, nil
}

// Write encodes base to w with option.
func Write(w io.Writer, base image.Image, option *FormatOption) error {
	return option.Encode(w, base)
}

// Save encodes base into the file output, creating its directory if needed.
// The image is written to a temporary file first, so output is replaced only
// after a successful encode.
func Save(output string, base image.Image, option *FormatOption) (err error) {
	dir := filepath.Dir(output)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	f, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if err = option.Encode(f, base); err != nil {
		return errors.Join(err, f.Close())
	}
	if err = f.Close(); err != nil {
		return
	}
	return os.Rename(f.Name(), output)
}
