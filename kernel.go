package imgrotate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// Kernel is a named resampling filter. A filter with zero support and no
// kernel function selects the nearest source pixel.
type Kernel struct {
	Name   string
	Filter imaging.ResampleFilter
}

// Support returns the radius beyond which the kernel weight is zero.
func (k Kernel) Support() float64 { return k.Filter.Support }

// Identity reports whether k samples the nearest pixel without weighting.
func (k Kernel) Identity() bool { return k.Filter.Support == 0 || k.Filter.Kernel == nil }

// Weight evaluates the kernel at distance x.
func (k Kernel) Weight(x float64) float64 {
	if k.Identity() {
		if math.Abs(x) < 0.5 {
			return 1
		}
		return 0
	}
	return k.Filter.Kernel(x)
}

func (k Kernel) String() string { return k.Name }

// Robidoux cubic filter coefficients.
const (
	robidouxB      = 0.37821575509399867
	robidouxC      = 0.31089212245300067
	robidouxSharpB = 0.2620145123990142
	robidouxSharpC = 0.3689927438004929
)

var (
	// NearestNeighbor selects the closest source pixel.
	NearestNeighbor = Kernel{"NearestNeighbor", imaging.NearestNeighbor}
	// Box averages the pixels under a unit box.
	Box = Kernel{"Box", imaging.Box}
	// Triangle is the bilinear filter.
	Triangle = Kernel{"Triangle", imaging.Linear}
	// Hermite is the cubic BC-spline with B=0, C=0.
	Hermite = Kernel{"Hermite", imaging.Hermite}
	// Bicubic is the Keys cubic convolution with a=-0.5.
	Bicubic = Kernel{"Bicubic", imaging.ResampleFilter{Support: 2, Kernel: func(x float64) float64 { return keys(x, -0.5) }}}
	// CatmullRom is the cubic BC-spline with B=0, C=0.5.
	CatmullRom = Kernel{"CatmullRom", imaging.CatmullRom}
	// MitchellNetravali is the cubic BC-spline with B=1/3, C=1/3.
	MitchellNetravali = Kernel{"MitchellNetravali", imaging.MitchellNetravali}
	// Robidoux is a cubic BC-spline tuned for distortion.
	Robidoux = Kernel{"Robidoux", cubicFilter(robidouxB, robidouxC)}
	// RobidouxSharp is a sharper variant of Robidoux.
	RobidouxSharp = Kernel{"RobidouxSharp", cubicFilter(robidouxSharpB, robidouxSharpC)}
	// Spline is the cubic B-spline (B=1, C=0).
	Spline = Kernel{"Spline", cubicFilter(1, 0)}
	// Lanczos2 is the sinc-windowed sinc with radius 2.
	Lanczos2 = Kernel{"Lanczos2", lanczosFilter(2)}
	// Lanczos3 is the sinc-windowed sinc with radius 3.
	Lanczos3 = Kernel{"Lanczos3", imaging.Lanczos}
	// Lanczos5 is the sinc-windowed sinc with radius 5.
	Lanczos5 = Kernel{"Lanczos5", lanczosFilter(5)}
	// Lanczos8 is the sinc-windowed sinc with radius 8.
	Lanczos8 = Kernel{"Lanczos8", lanczosFilter(8)}
	// Welch is the parabolic-windowed sinc with radius 3.
	Welch = Kernel{"Welch", imaging.Welch}
)

var kernels = func() map[string]Kernel {
	m := make(map[string]Kernel)
	for _, k := range []Kernel{
		NearestNeighbor, Box, Triangle, Hermite,
		Bicubic, CatmullRom, MitchellNetravali, Robidoux, RobidouxSharp, Spline,
		Lanczos2, Lanczos3, Lanczos5, Lanczos8, Welch,
	} {
		m[strings.ToLower(k.Name)] = k
	}
	return m
}()

// LookupKernel returns the kernel registered under name, ignoring case.
func LookupKernel(name string) (Kernel, error) {
	if k, ok := kernels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return Kernel{}, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

// Kernels returns every registered kernel sorted by name.
func Kernels() []Kernel {
	ks := make([]Kernel, 0, len(kernels))
	for _, k := range kernels {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].Name < ks[j].Name })
	return ks
}

// KernelNames returns the names of every registered kernel sorted.
func KernelNames() []string {
	var names []string
	for _, k := range Kernels() {
		names = append(names, k.Name)
	}
	return names
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func lanczosFilter(a float64) imaging.ResampleFilter {
	return imaging.ResampleFilter{
		Support: a,
		Kernel: func(x float64) float64 {
			x = math.Abs(x)
			if x < a {
				return sinc(x) * sinc(x/a)
			}
			return 0
		},
	}
}

func cubicFilter(b, c float64) imaging.ResampleFilter {
	return imaging.ResampleFilter{
		Support: 2,
		Kernel: func(x float64) float64 {
			return bcspline(x, b, c)
		},
	}
}

func bcspline(x, b, c float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
	case x < 2:
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return 0
}

// keys is the Keys cubic convolution kernel with parameter a.
func keys(x, a float64) float64 {
	x = math.Abs(x)
	switch {
	case x <= 1:
		return ((a+2)*x-(a+3))*x*x + 1
	case x < 2:
		return ((a*x-5*a)*x+8*a)*x - 4*a
	}
	return 0
}
