package imgrotate

import (
	"fmt"
	"image"
	"math"
)

// normalizeAngle maps angle into [0, 360).
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		angle = 0
	}
	return angle
}

// sincos returns the sine and cosine of angle degrees, exact for
// multiples of 90 degrees.
func sincos(angle float64) (sin, cos float64) {
	angle = normalizeAngle(angle)
	switch angle {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(math.Pi * angle / 180)
}

// rotatePoint rotates (x, y) clockwise in y-down coordinates.
func rotatePoint(x, y, sin, cos float64) (float64, float64) {
	return x*cos - y*sin, x*sin + y*cos
}

// unrotatePoint is the inverse of rotatePoint.
func unrotatePoint(x, y, sin, cos float64) (float64, float64) {
	return x*cos + y*sin, -x*sin + y*cos
}

// Rotate rotates src clockwise by angle degrees about its center and returns
// a new buffer. src is never modified.
func Rotate(src *Buffer, angle float64, kernel Kernel, canvas CanvasPolicy, edge EdgePolicy) (*Buffer, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !canvas.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, canvas)
	}
	if !edge.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPolicy, edge)
	}
	if kernel.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownKernel)
	}

	dstW, dstH := canvas.size(src.Width, src.Height, angle)
	dst, err := NewBuffer(dstW, dstH, src.Channels)
	if err != nil {
		return nil, err
	}

	Logger().Debug("rotate",
		"src", image.Pt(src.Width, src.Height), "dst", image.Pt(dstW, dstH), "channels", src.Channels,
		"angle", angle, "kernel", kernel.Name, "canvas", canvas, "edge", edge)

	sin, cos := sincos(angle)
	srcCX, srcCY := float64(src.Width)/2, float64(src.Height)/2
	dstCX, dstCY := float64(dstW)/2, float64(dstH)/2

	parallel(0, dstH, func(ys <-chan int) {
		s := newSampler(src, kernel, edge)
		for dstY := range ys {
			row := dst.Pix[dstY*dst.Stride() : (dstY+1)*dst.Stride()]
			oy := float64(dstY) + 0.5 - dstCY
			for dstX := 0; dstX < dstW; dstX++ {
				sx, sy := unrotatePoint(float64(dstX)+0.5-dstCX, oy, sin, cos)
				s.sample(row[dstX*dst.Channels:(dstX+1)*dst.Channels], sx+srcCX, sy+srcCY)
			}
		}
	})

	return dst, nil
}

// RotateImage rotates img according to opts using the selected backend.
func RotateImage(img image.Image, opts *Options) (image.Image, error) {
	if opts == nil {
		o := NewOptions()
		opts = &o
	}
	b, err := LookupBackend(opts.backend())
	if err != nil {
		return nil, err
	}
	return b.Rotate(img, opts)
}
