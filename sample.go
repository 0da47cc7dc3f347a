package imgrotate

import "math"

// weightEpsilon is the smallest accumulated weight that is still divided by.
const weightEpsilon = 1e-9

// tap is one resolved source index along an axis and its kernel weight.
type tap struct {
	index  int
	ok     bool
	weight float64
}

// sampler reads a source buffer at fractional positions. Each worker owns
// one sampler; the tap slices are reused between pixels.
type sampler struct {
	src           *Buffer
	kernel        Kernel
	edge          EdgePolicy
	interpolating bool
	xs, ys        []tap
	acc           [4]float64
}

func newSampler(src *Buffer, kernel Kernel, edge EdgePolicy) *sampler {
	n := 2*int(math.Ceil(kernel.Support())) + 2
	return &sampler{
		src:           src,
		kernel:        kernel,
		edge:          edge,
		interpolating: interpolating(kernel),
		xs:            make([]tap, 0, n),
		ys:            make([]tap, 0, n),
	}
}

// interpolating reports whether k passes through the samples, i.e. is one at
// zero and vanishes at every other integer offset.
func interpolating(k Kernel) bool {
	if k.Identity() {
		return true
	}
	if math.Abs(k.Weight(0)-1) > 1e-12 {
		return false
	}
	for i := 1.0; i <= math.Ceil(k.Support()); i++ {
		if math.Abs(k.Weight(i)) > 1e-12 || math.Abs(k.Weight(-i)) > 1e-12 {
			return false
		}
	}
	return true
}

// sample writes into d the value of the source at continuous position
// (x, y), where pixel (i, j) covers [i, i+1) x [j, j+1).
func (s *sampler) sample(d []uint8, x, y float64) {
	if s.kernel.Identity() {
		s.nearest(d, int(math.Floor(x)), int(math.Floor(y)))
		return
	}

	// Kernel positions are measured between pixel centers.
	u, v := x-0.5, y-0.5
	if s.interpolating {
		ru, rv := math.Round(u), math.Round(v)
		if math.Abs(u-ru) < weightEpsilon && math.Abs(v-rv) < weightEpsilon {
			s.nearest(d, int(ru), int(rv))
			return
		}
	}

	s.xs = s.taps(s.xs[:0], u, s.src.Width)
	s.ys = s.taps(s.ys[:0], v, s.src.Height)

	if s.src.Channels == 4 {
		s.blendAlpha(d)
	} else {
		s.blend(d)
	}
}

func (s *sampler) taps(dst []tap, pos float64, n int) []tap {
	r := s.kernel.Support()
	for i := int(math.Ceil(pos - r)); i <= int(math.Floor(pos+r)); i++ {
		w := s.kernel.Weight(float64(i) - pos)
		if w == 0 {
			continue
		}
		idx, ok := s.edge.resolve(i, n)
		dst = append(dst, tap{index: idx, ok: ok, weight: w})
	}
	return dst
}

func (s *sampler) nearest(d []uint8, x, y int) {
	x, okx := s.edge.resolve(x, s.src.Width)
	y, oky := s.edge.resolve(y, s.src.Height)
	if !okx || !oky {
		clear(d)
		return
	}
	i := s.src.PixOffset(x, y)
	copy(d, s.src.Pix[i:i+s.src.Channels])
}

// blend handles buffers without alpha. Taps outside the source are skipped
// and the remaining weights renormalized.
func (s *sampler) blend(d []uint8) {
	c := s.src.Channels
	acc := s.acc[:c]
	clear(acc)
	var sum float64
	for _, ty := range s.ys {
		if !ty.ok {
			continue
		}
		row := s.src.Pix[ty.index*s.src.Stride():]
		for _, tx := range s.xs {
			if !tx.ok {
				continue
			}
			w := tx.weight * ty.weight
			p := row[tx.index*c : tx.index*c+c]
			for k := range acc {
				acc[k] += w * float64(p[k])
			}
			sum += w
		}
	}
	if math.Abs(sum) < weightEpsilon {
		clear(d)
		return
	}
	for k := range acc {
		d[k] = clamp(acc[k] / sum)
	}
}

// blendAlpha handles RGBA buffers. Every tap counts toward the total weight;
// taps outside the source contribute transparent black, and colors are
// weighted by alpha so that transparent pixels do not darken the result.
func (s *sampler) blendAlpha(d []uint8) {
	var r, g, b, a, sum float64
	for _, ty := range s.ys {
		if !ty.ok {
			for _, tx := range s.xs {
				sum += tx.weight * ty.weight
			}
			continue
		}
		row := s.src.Pix[ty.index*s.src.Stride():]
		for _, tx := range s.xs {
			w := tx.weight * ty.weight
			sum += w
			if !tx.ok {
				continue
			}
			p := row[tx.index*4 : tx.index*4+4 : tx.index*4+4]
			wa := w * float64(p[3])
			r += wa * float64(p[0])
			g += wa * float64(p[1])
			b += wa * float64(p[2])
			a += wa
		}
	}
	if math.Abs(sum) < weightEpsilon || a <= weightEpsilon {
		clear(d)
		return
	}
	aInv := 1 / a
	d[0] = clamp(r * aInv)
	d[1] = clamp(g * aInv)
	d[2] = clamp(b * aInv)
	d[3] = clamp(a / sum)
}
