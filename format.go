package imgrotate

import (
	"errors"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/pdf"  // decode pdf format
	"github.com/sunshineplan/tiff" // decode tiff format
	_ "golang.org/x/image/bmp"  // decode bmp format
	_ "golang.org/x/image/webp" // decode webp format
)

// ErrUnsupportedFormat is returned for an unknown image format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an image file format.
type Format int

// Image file formats.
const (
	JPEG Format = iota
	PNG
	GIF
	TIFF
	BMP
	PDF
)

var formatExts = map[Format]string{
	JPEG: "jpg",
	PNG:  "png",
	GIF:  "gif",
	TIFF: "tif",
	BMP:  "bmp",
	PDF:  "pdf",
}

var formatFromExt = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
	"pdf":  PDF,
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff"), "bmp" and "pdf" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := formatFromExt[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, ErrUnsupportedFormat
}

func (f Format) String() string {
	if ext, ok := formatExts[f]; ok {
		return ext
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if _, ok := formatExts[f]; !ok {
		return nil, ErrUnsupportedFormat
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) (err error) {
	*f, err = FormatFromExtension(string(text))
	return
}

// TIFFCompression describes the type of compression used in Options.
type TIFFCompression int

// Constants for supported TIFF compression types.
const (
	TIFFUncompressed TIFFCompression = iota
	TIFFDeflate
)

func (c TIFFCompression) value() tiff.CompressionType {
	if c == TIFFDeflate {
		return tiff.Deflate
	}
	return tiff.Uncompressed
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TIFFCompression) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "none":
		*c = TIFFUncompressed
	case "deflate":
		*c = TIFFDeflate
	default:
		*c = -1
		return ErrUnsupportedFormat
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c TIFFCompression) MarshalText() ([]byte, error) {
	switch c {
	case TIFFUncompressed:
		return []byte("none"), nil
	case TIFFDeflate:
		return []byte("deflate"), nil
	}
	return nil, ErrUnsupportedFormat
}

type encodeConfig struct {
	quality         int
	gifNumColors    int
	pngCompression  png.CompressionLevel
	tiffCompression TIFFCompression
}

var defaultEncodeConfig = encodeConfig{
	quality:         75,
	gifNumColors:    256,
	pngCompression:  png.DefaultCompression,
	tiffCompression: TIFFDeflate,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// Quality returns an EncodeOption that sets the output JPEG or PDF quality.
// Quality ranges from 1 to 100 inclusive, higher is better.
func Quality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.quality = quality
	}
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return func(c *encodeConfig) {
		c.gifNumColors = numColors
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompression = level
	}
}

// TIFFCompressionType returns an EncodeOption that sets the compression type
// of the TIFF-encoded image. Default is TIFFDeflate.
func TIFFCompressionType(compression TIFFCompression) EncodeOption {
	return func(c *encodeConfig) {
		c.tiffCompression = compression
	}
}

// FormatOption is format option
type FormatOption struct {
	Format       Format
	EncodeOption []EncodeOption
}

// Encode writes the image base to w in the format specified by FormatOption.
func (f *FormatOption) Encode(w io.Writer, base image.Image) error {
	cfg := defaultEncodeConfig
	for _, option := range f.EncodeOption {
		option(&cfg)
	}

	switch f.Format {
	case JPEG:
		return imaging.Encode(w, base, imaging.JPEG, imaging.JPEGQuality(cfg.quality))
	case PNG:
		return imaging.Encode(w, base, imaging.PNG, imaging.PNGCompressionLevel(cfg.pngCompression))
	case GIF:
		return imaging.Encode(w, base, imaging.GIF, imaging.GIFNumColors(cfg.gifNumColors))
	case BMP:
		return imaging.Encode(w, base, imaging.BMP)
	case TIFF:
		return tiff.Encode(w, base, &tiff.Options{Compression: cfg.tiffCompression.value(), Predictor: true})
	case PDF:
		return pdf.Encode(w, []image.Image{base}, &pdf.Options{Quality: cfg.quality})
	}
	return ErrUnsupportedFormat
}
