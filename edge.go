package imgrotate

import (
	"fmt"
	"strings"
)

// EdgePolicy decides which source sample a kernel tap reads when it falls
// outside the source bounds.
type EdgePolicy int

// Edge policies.
const (
	// EdgeZero treats outside taps as fully transparent black.
	EdgeZero EdgePolicy = iota
	// EdgeClamp reads the nearest pixel inside the source.
	EdgeClamp
	// EdgeWrap tiles the source in both directions.
	EdgeWrap
)

var edgeNames = map[EdgePolicy]string{
	EdgeZero:  "zero",
	EdgeClamp: "clamp",
	EdgeWrap:  "wrap",
}

// resolve maps index i into [0, n). ok is false when the tap has no source
// pixel and must be treated as zero.
func (e EdgePolicy) resolve(i, n int) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch e {
	case EdgeClamp:
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	case EdgeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	}
	return i, false
}

func (e EdgePolicy) valid() bool {
	_, ok := edgeNames[e]
	return ok
}

func (e EdgePolicy) String() string {
	if s, ok := edgeNames[e]; ok {
		return s
	}
	return fmt.Sprintf("EdgePolicy(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e EdgePolicy) MarshalText() ([]byte, error) {
	if !e.valid() {
		return nil, fmt.Errorf("%w: edge %d", ErrUnknownPolicy, int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EdgePolicy) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for k, v := range edgeNames {
		if v == s {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("%w: edge %q", ErrUnknownPolicy, text)
}
