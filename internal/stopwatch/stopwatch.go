// Package stopwatch times named stages of a run and reports them as a table.
package stopwatch

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

// Sample is the wall-clock time taken by one stage.
type Sample struct {
	Stage   string
	Elapsed time.Duration
	Err     error
}

// Measure runs fn and returns its result together with the elapsed time.
func Measure[T any](stage string, fn func() (T, error)) (T, Sample, error) {
	start := time.Now()
	v, err := fn()
	return v, Sample{Stage: stage, Elapsed: time.Since(start), Err: err}, err
}

// Run is Measure for functions without a result.
func Run(stage string, fn func() error) (Sample, error) {
	_, s, err := Measure(stage, func() (struct{}, error) { return struct{}{}, fn() })
	return s, err
}

// Recorder collects samples. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample

	// Start and Finish, if set, are called around every recorded stage.
	Start  func(stage string)
	Finish func(s Sample)
}

// Record wraps Measure, storing the sample.
func Record[T any](r *Recorder, stage string, fn func() (T, error)) (T, error) {
	if r.Start != nil {
		r.Start(stage)
	}
	v, s, err := Measure(stage, fn)
	r.Add(s)
	if r.Finish != nil {
		r.Finish(s)
	}
	return v, err
}

// Add stores s.
func (r *Recorder) Add(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, s)
}

// Samples returns a copy of the recorded samples in recording order.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

// Total returns the sum of all recorded durations.
func (r *Recorder) Total() (d time.Duration) {
	for _, s := range r.Samples() {
		d += s.Elapsed
	}
	return
}

// Report writes one aligned line per sample to w.
func (r *Recorder) Report(w io.Writer) error {
	samples := r.Samples()
	width := runewidth.StringWidth("stage")
	for _, s := range samples {
		width = max(width, runewidth.StringWidth(s.Stage))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %12s\n", runewidth.FillRight("stage", width), "elapsed")
	for _, s := range samples {
		fmt.Fprintf(&b, "%s  %12s", runewidth.FillRight(s.Stage, width), s.Elapsed.Round(time.Microsecond))
		if s.Err != nil {
			fmt.Fprintf(&b, "  error: %v", s.Err)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s  %12s\n", runewidth.FillRight("total", width), r.Total().Round(time.Microsecond))

	_, err := io.WriteString(w, b.String())
	return err
}
