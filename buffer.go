package imgrotate

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Buffer is a decoded image held as row-major 8-bit samples.
// Channels is 1 (gray), 3 (RGB) or 4 (non-premultiplied RGBA).
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptySource, width, height)
	}
	if !validChannels(channels) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannelCount, channels)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

func validChannels(c int) bool {
	return c == 1 || c == 3 || c == 4
}

// Validate checks that b describes a usable image.
func (b *Buffer) Validate() error {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return ErrEmptySource
	}
	if !validChannels(b.Channels) {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannelCount, b.Channels)
	}
	if len(b.Pix) != b.Width*b.Height*b.Channels {
		return fmt.Errorf("%w: have %d, want %d", ErrInvalidBuffer, len(b.Pix), b.Width*b.Height*b.Channels)
	}
	return nil
}

// Stride returns the number of bytes in one row.
func (b *Buffer) Stride() int { return b.Width * b.Channels }

// PixOffset returns the index of the first sample of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int { return y*b.Stride() + x*b.Channels }

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Pix = append([]uint8(nil), b.Pix...)
	return &c
}

// FromImage converts img into a Buffer. Gray images keep one channel,
// opaque images are stored as RGB and everything else as RGBA.
func FromImage(img image.Image) (*Buffer, error) {
	r := img.Bounds()
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrEmptySource, r)
	}

	if g, ok := img.(*image.Gray); ok {
		dst, _ := NewBuffer(r.Dx(), r.Dy(), 1)
		for y := 0; y < dst.Height; y++ {
			i := g.PixOffset(r.Min.X, r.Min.Y+y)
			copy(dst.Pix[y*dst.Width:(y+1)*dst.Width], g.Pix[i:i+dst.Width])
		}
		return dst, nil
	}

	src := imaging.Clone(img)
	channels := 4
	if src.Opaque() {
		channels = 3
	}
	dst, _ := NewBuffer(r.Dx(), r.Dy(), channels)
	if channels == 4 {
		for y := 0; y < dst.Height; y++ {
			copy(dst.Pix[y*dst.Stride():(y+1)*dst.Stride()], src.Pix[y*src.Stride:y*src.Stride+dst.Stride()])
		}
		return dst, nil
	}
	for y := 0; y < dst.Height; y++ {
		s := src.Pix[y*src.Stride:]
		d := dst.Pix[y*dst.Stride():]
		for x := 0; x < dst.Width; x++ {
			d[x*3+0] = s[x*4+0]
			d[x*3+1] = s[x*4+1]
			d[x*3+2] = s[x*4+2]
		}
	}
	return dst, nil
}

// Image returns b as an image.Image sharing no memory with b.
func (b *Buffer) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	switch b.Channels {
	case 1:
		img := image.NewGray(rect)
		copy(img.Pix, b.Pix)
		return img
	case 3:
		img := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+4 {
			img.Pix[j+0] = b.Pix[i+0]
			img.Pix[j+1] = b.Pix[i+1]
			img.Pix[j+2] = b.Pix[i+2]
			img.Pix[j+3] = 0xff
		}
		return img
	default:
		img := image.NewNRGBA(rect)
		copy(img.Pix, b.Pix)
		return img
	}
}
