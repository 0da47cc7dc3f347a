package imgrotate

import (
	"flag"
	"io"
	"testing"
)

func TestEdgeResolve(t *testing.T) {
	for _, tc := range []struct {
		edge EdgePolicy
		i, n int
		want int
		ok   bool
	}{
		{EdgeZero, 2, 4, 2, true},
		{EdgeZero, -1, 4, -1, false},
		{EdgeZero, 4, 4, 4, false},
		{EdgeClamp, -3, 4, 0, true},
		{EdgeClamp, 9, 4, 3, true},
		{EdgeWrap, -1, 4, 3, true},
		{EdgeWrap, -5, 4, 3, true},
		{EdgeWrap, 4, 4, 0, true},
		{EdgeWrap, 9, 4, 1, true},
	} {
		got, ok := tc.edge.resolve(tc.i, tc.n)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("%s.resolve(%d, %d) = %d, %v; want %d, %v", tc.edge, tc.i, tc.n, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEdgeSample(t *testing.T) {
	src := &Buffer{Width: 3, Height: 1, Channels: 1, Pix: []uint8{10, 20, 30}}
	for _, tc := range []struct {
		edge EdgePolicy
		x    float64
		want uint8
	}{
		{EdgeZero, -0.5, 0},
		{EdgeClamp, -0.5, 10},
		{EdgeWrap, -0.5, 30},
		{EdgeZero, 3.5, 0},
		{EdgeClamp, 3.5, 30},
		{EdgeWrap, 3.5, 10},
		{EdgeZero, 1.5, 20},
	} {
		d := make([]uint8, 1)
		newSampler(src, NearestNeighbor, tc.edge).sample(d, tc.x, 0.5)
		if d[0] != tc.want {
			t.Errorf("%s at %v: expected %d; got %d", tc.edge, tc.x, tc.want, d[0])
		}
	}
}

func TestEdgeZeroRenormalizes(t *testing.T) {
	src := &Buffer{Width: 2, Height: 1, Channels: 1, Pix: []uint8{100, 100}}
	d := make([]uint8, 1)
	// Half of the taps fall outside; the inside one keeps its value.
	newSampler(src, Triangle, EdgeZero).sample(d, 0.25, 0.5)
	if d[0] != 100 {
		t.Errorf("expected 100; got %d", d[0])
	}

	rgba := &Buffer{Width: 2, Height: 1, Channels: 4, Pix: []uint8{100, 100, 100, 255, 100, 100, 100, 255}}
	d = make([]uint8, 4)
	newSampler(rgba, Triangle, EdgeZero).sample(d, 0, 0.5)
	if d[0] != 100 || d[3] != 128 {
		t.Errorf("expected color 100 with half alpha; got %v", d)
	}
}

func TestPolicyTextVar(t *testing.T) {
	for _, tc := range []struct {
		argument string
		edge     EdgePolicy
	}{
		{"zero", EdgeZero},
		{"Clamp", EdgeClamp},
		{"WRAP", EdgeWrap},
		{"mirror", EdgePolicy(-1)},
	} {
		f := flag.NewFlagSet("test", flag.ContinueOnError)
		f.SetOutput(io.Discard)
		var edge EdgePolicy
		f.TextVar(&edge, "e", EdgePolicy(-1), "")
		f.Parse(append([]string{"-e"}, tc.argument))
		if edge != tc.edge {
			t.Errorf("expected %s edge; got %s", tc.edge, edge)
		}
	}

	for _, tc := range []struct {
		argument string
		canvas   CanvasPolicy
	}{
		{"grow", CanvasGrow},
		{"grow-to-fit", CanvasGrow},
		{"Fixed", CanvasFixed},
		{"stretch", CanvasPolicy(-1)},
	} {
		f := flag.NewFlagSet("test", flag.ContinueOnError)
		f.SetOutput(io.Discard)
		var canvas CanvasPolicy
		f.TextVar(&canvas, "c", CanvasPolicy(-1), "")
		f.Parse(append([]string{"-c"}, tc.argument))
		if canvas != tc.canvas {
			t.Errorf("expected %s canvas; got %s", tc.canvas, canvas)
		}
	}

	if _, err := EdgePolicy(7).MarshalText(); err == nil {
		t.Error("marshal unknown edge want error")
	}
}
