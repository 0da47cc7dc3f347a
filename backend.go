package imgrotate

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Backend performs the rotation described by Options on a decoded image.
type Backend interface {
	Name() string
	Rotate(img image.Image, opts *Options) (image.Image, error)
}

// Backend names.
const (
	EngineBackend  = "engine"
	ImagingBackend = "imaging"
	XDrawBackend   = "xdraw"
)

var backends = map[string]Backend{
	EngineBackend:  engine{},
	ImagingBackend: imagingRotator{},
	XDrawBackend:   xdrawRotator{},
}

// LookupBackend returns the backend registered under name, ignoring case.
func LookupBackend(name string) (Backend, error) {
	if b, ok := backends[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// BackendNames returns the names of every registered backend sorted.
func BackendNames() []string {
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkSource(img image.Image, angle float64) error {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	if img == nil || img.Bounds().Empty() {
		return ErrEmptySource
	}
	return nil
}

// engine is the built-in resampling engine.
type engine struct{}

func (engine) Name() string { return EngineBackend }

func (engine) Rotate(img image.Image, opts *Options) (image.Image, error) {
	if err := checkSource(img, opts.Angle); err != nil {
		return nil, err
	}
	k, err := LookupKernel(opts.kernel())
	if err != nil {
		return nil, err
	}
	src, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	dst, err := Rotate(src, opts.Angle, k, opts.Canvas, opts.Edge)
	if err != nil {
		return nil, err
	}
	return dst.Image(), nil
}

// imagingRotator delegates to disintegration/imaging, which always
// interpolates bilinearly and fills uncovered areas with transparency.
type imagingRotator struct{}

func (imagingRotator) Name() string { return ImagingBackend }

func (imagingRotator) Rotate(img image.Image, opts *Options) (image.Image, error) {
	if err := checkSource(img, opts.Angle); err != nil {
		return nil, err
	}
	if opts.Edge != EdgeZero {
		return nil, fmt.Errorf("%w: %s does not support %s", ErrUnsupportedEdge, ImagingBackend, opts.Edge)
	}
	if !opts.Canvas.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, opts.Canvas)
	}
	Logger().Debug("rotate", "backend", ImagingBackend, "angle", opts.Angle, "canvas", opts.Canvas)

	// imaging rotates counter-clockwise.
	dst := imaging.Rotate(img, -normalizeAngle(opts.Angle), color.Transparent)
	if opts.Canvas == CanvasFixed {
		r := img.Bounds()
		dst = imaging.CropCenter(dst, r.Dx(), r.Dy())
	}
	return dst, nil
}

// xdrawRotator delegates to golang.org/x/image/draw, driving its
// Transform with kernels from the table.
type xdrawRotator struct{}

func (xdrawRotator) Name() string { return XDrawBackend }

func (xdrawRotator) Rotate(img image.Image, opts *Options) (image.Image, error) {
	if err := checkSource(img, opts.Angle); err != nil {
		return nil, err
	}
	if opts.Edge != EdgeZero {
		return nil, fmt.Errorf("%w: %s does not support %s", ErrUnsupportedEdge, XDrawBackend, opts.Edge)
	}
	if !opts.Canvas.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, opts.Canvas)
	}
	k, err := LookupKernel(opts.kernel())
	if err != nil {
		return nil, err
	}
	Logger().Debug("rotate", "backend", XDrawBackend, "angle", opts.Angle, "kernel", k.Name, "canvas", opts.Canvas)

	sr := img.Bounds()
	dstW, dstH := opts.Canvas.size(sr.Dx(), sr.Dy(), opts.Angle)
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))

	var interp draw.Interpolator = draw.NearestNeighbor
	if !k.Identity() {
		interp = &draw.Kernel{Support: k.Support(), At: k.Weight}
	}
	interp.Transform(dst, rotation(sr, dst.Bounds(), opts.Angle), img, sr, draw.Src, nil)
	return dst, nil
}

// rotation returns the source-to-destination matrix that rotates src
// clockwise by angle degrees about its center onto the center of dst.
func rotation(src, dst image.Rectangle, angle float64) f64.Aff3 {
	sin, cos := sincos(angle)
	sx := float64(src.Min.X) + float64(src.Dx())/2
	sy := float64(src.Min.Y) + float64(src.Dy())/2
	dx := float64(dst.Min.X) + float64(dst.Dx())/2
	dy := float64(dst.Min.Y) + float64(dst.Dy())/2
	return f64.Aff3{
		cos, -sin, dx - cos*sx + sin*sy,
		sin, cos, dy - sin*sx - cos*sy,
	}
}
