package imgrotate

import (
	"image"
	"io"
	"path/filepath"
)

// Defaults used by NewOptions.
const (
	DefaultAngle  = 10
	DefaultKernel = "Bicubic"
)

var defaultFormat = FormatOption{Format: PNG}

// Options represents options that can be used to configure a rotation.
type Options struct {
	Angle   float64
	Kernel  string
	Canvas  CanvasPolicy
	Edge    EdgePolicy
	Backend string
	Format  FormatOption
}

// NewOptions creates a new option with default setting.
func NewOptions() Options {
	return Options{
		Angle:   DefaultAngle,
		Kernel:  DefaultKernel,
		Backend: EngineBackend,
		Format:  defaultFormat,
	}
}

func (opts *Options) kernel() string {
	if opts.Kernel == "" {
		return DefaultKernel
	}
	return opts.Kernel
}

func (opts *Options) backend() string {
	if opts.Backend == "" {
		return EngineBackend
	}
	return opts.Backend
}

// SetAngle sets the rotation angle in degrees, clockwise.
func (opts *Options) SetAngle(angle float64) *Options {
	opts.Angle = angle
	return opts
}

// SetKernel sets the resampling kernel by name.
func (opts *Options) SetKernel(name string) error {
	k, err := LookupKernel(name)
	if err != nil {
		return err
	}
	opts.Kernel = k.Name
	return nil
}

// SetCanvas sets the value for the Canvas field.
func (opts *Options) SetCanvas(canvas CanvasPolicy) *Options {
	opts.Canvas = canvas
	return opts
}

// SetEdge sets the value for the Edge field.
func (opts *Options) SetEdge(edge EdgePolicy) *Options {
	opts.Edge = edge
	return opts
}

// SetBackend sets the rotation backend by name.
func (opts *Options) SetBackend(name string) error {
	b, err := LookupBackend(name)
	if err != nil {
		return err
	}
	opts.Backend = b.Name()
	return nil
}

// SetFormat sets the value for the Format field.
func (opts *Options) SetFormat(f string, options ...EncodeOption) (err error) {
	format, err := FormatFromExtension(f)
	if err != nil {
		return
	}
	opts.Format = FormatOption{format, options}
	return
}

// Convert rotates base according opts and writes the result to w.
func (opts *Options) Convert(w io.Writer, base image.Image) error {
	img, err := RotateImage(base, opts)
	if err != nil {
		return err
	}

	return opts.Format.Encode(w, img)
}

// ConvertExt convert filename's ext according image format.
func (opts *Options) ConvertExt(filename string) string {
	return filename[0:len(filename)-len(filepath.Ext(filename))] + "." + formatExts[opts.Format.Format]
}
