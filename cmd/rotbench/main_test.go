package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sunshineplan/imgrotate"
)

func TestPlan(t *testing.T) {
	jobs, err := plan("engine,imaging", "Bicubic, Box")
	if err != nil {
		t.Fatal(err)
	}
	want := []job{
		{backend: "engine", kernel: "Bicubic"},
		{backend: "engine", kernel: "Box"},
		{backend: "imaging"},
	}
	if !slices.Equal(jobs, want) {
		t.Errorf("expected %v; got %v", want, jobs)
	}

	jobs, err = plan("all", "all")
	if err != nil {
		t.Fatal(err)
	}
	if n := 2*len(imgrotate.KernelNames()) + 1; len(jobs) != n {
		t.Errorf("expected %d jobs; got %d", n, len(jobs))
	}

	if _, err := plan("engine", "Foo"); !errors.Is(err, imgrotate.ErrUnknownKernel) {
		t.Errorf("expected ErrUnknownKernel; got %v", err)
	}
	if _, err := plan("gdi", "Box"); !errors.Is(err, imgrotate.ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend; got %v", err)
	}
}

func TestJobName(t *testing.T) {
	if name := (job{backend: "xdraw", kernel: "Welch"}).name(); name != "xdraw/Welch" {
		t.Errorf("unexpected name %q", name)
	}
	if name := (job{backend: "imaging"}).name(); name != "imaging" {
		t.Errorf("unexpected name %q", name)
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 24, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			img.Set(x, y, color.NRGBA{uint8(x * 10), uint8(y * 15), 80, 255})
		}
	}
	var buf bytes.Buffer
	if err := imgrotate.Write(&buf, img, &imgrotate.FormatOption{Format: imgrotate.PNG}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestJobRun(t *testing.T) {
	b := testPNG(t)
	defer func(s, d string) { *src, *dst = s, d }(*src, *dst)
	*src = "photo.png"

	for _, dir := range []string{"", t.TempDir()} {
		*dst = dir
		rec := newRecorder()
		j := job{backend: imgrotate.EngineBackend, kernel: "Triangle"}
		if err := j.run(rec, b); err != nil {
			t.Fatal(err)
		}

		samples := rec.Samples()
		if len(samples) != 3 {
			t.Fatalf("expected 3 samples; got %d", len(samples))
		}
		for i, stage := range []string{"decode", "rotate", "encode"} {
			if want := "engine/Triangle " + stage; samples[i].Stage != want || samples[i].Err != nil {
				t.Errorf("expected stage %q; got %+v", want, samples[i])
			}
		}

		if dir == "" {
			continue
		}
		output := filepath.Join(dir, "photo-engine-Triangle.png")
		f, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		cfg, _, err := imgrotate.DecodeConfig(bytes.NewReader(f))
		if err != nil {
			t.Fatal(err)
		}
		w, h := imgrotate.RotatedSize(24, 16, *angle)
		if cfg.Width != w || cfg.Height != h {
			t.Errorf("expected %dx%d; got %dx%d", w, h, cfg.Width, cfg.Height)
		}
	}
}

func TestJobRunError(t *testing.T) {
	var started []string
	rec := newRecorder()
	start := rec.Start
	rec.Start = func(stage string) {
		started = append(started, stage)
		start(stage)
	}
	err := job{backend: imgrotate.EngineBackend, kernel: "Box"}.run(rec, []byte("not an image"))
	if err == nil {
		t.Fatal("run on invalid data want error")
	}
	samples := rec.Samples()
	if len(samples) != 1 || !strings.HasSuffix(samples[0].Stage, "decode") || samples[0].Err == nil {
		t.Errorf("expected one failed decode sample; got %+v", samples)
	}
	if len(started) != 1 || started[0] != samples[0].Stage {
		t.Errorf("expected start hook for %q; got %v", samples[0].Stage, started)
	}
}
