package imgrotate

import (
	"fmt"
	"math"
	"strings"
)

// CanvasPolicy decides the size of the rotated image.
type CanvasPolicy int

// Canvas policies.
const (
	// CanvasGrow enlarges the output so that nothing of the source is cropped.
	CanvasGrow CanvasPolicy = iota
	// CanvasFixed keeps the source size and crops whatever rotates out.
	CanvasFixed
)

var canvasNames = map[CanvasPolicy]string{
	CanvasGrow:  "grow",
	CanvasFixed: "fixed",
}

func (c CanvasPolicy) valid() bool {
	_, ok := canvasNames[c]
	return ok
}

func (c CanvasPolicy) String() string {
	if s, ok := canvasNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CanvasPolicy(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c CanvasPolicy) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: canvas %d", ErrUnknownPolicy, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CanvasPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "grow", "grow-to-fit":
		*c = CanvasGrow
	case "fixed", "crop":
		*c = CanvasFixed
	default:
		return fmt.Errorf("%w: canvas %q", ErrUnknownPolicy, text)
	}
	return nil
}

// size returns the destination size for a w x h source rotated by angle degrees.
func (c CanvasPolicy) size(w, h int, angle float64) (int, int) {
	if c == CanvasFixed {
		return w, h
	}
	return RotatedSize(w, h, angle)
}

// sizeEpsilon absorbs float noise when rounding the rotated extent outward,
// so that 360 degrees does not add a pixel.
const sizeEpsilon = 1e-6

// RotatedSize returns the size of the smallest canvas holding a w x h image
// rotated by angle degrees about its center.
func RotatedSize(w, h int, angle float64) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}

	sin, cos := sincos(angle)
	hw, hh := float64(w)/2, float64(h)/2
	var maxx, maxy float64
	for _, p := range [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}} {
		x, y := rotatePoint(p[0], p[1], sin, cos)
		maxx = math.Max(maxx, math.Abs(x))
		maxy = math.Max(maxy, math.Abs(y))
	}

	return int(math.Ceil(2*maxx - sizeEpsilon)), int(math.Ceil(2*maxy - sizeEpsilon))
}
