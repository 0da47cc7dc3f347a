package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sunshineplan/imgrotate"
	"github.com/sunshineplan/imgrotate/internal/stopwatch"
	"github.com/sunshineplan/utils/log"
)

var (
	src     = flag.String("src", "", "")
	dst     = flag.String("dst", "", "")
	angle   = flag.Float64("angle", imgrotate.DefaultAngle, "")
	kernels = flag.String("kernel", "all", "")
	backend = flag.String("backend", "all", "")
	repeat  = flag.Int("repeat", 1, "")
	orient  = flag.Bool("orient", true, "")
	debug   = flag.Bool("debug", false, "")
	canvas  imgrotate.CanvasPolicy
	edge    imgrotate.EdgePolicy
	format  = imgrotate.PNG
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
	fmt.Println(`
  --src
		source image
  --dst
		output directory, rotated images are discarded if empty
  --angle
		rotation angle in degrees, clockwise (default: 10)
  --kernel
		comma separated resampling kernels or all (default: all)
  --backend
		comma separated backends (engine, imaging, xdraw) or all (default: all)
  --canvas
		output canvas (grow, fixed, default: grow)
  --edge
		edge fill (zero, clamp, wrap, default: zero)
  --format
		output format (jpg, png, gif, tif, bmp and pdf are supported, default: png)
  --orient
		apply the EXIF orientation of the source (default: true)
  --repeat
		number of runs per kernel (default: 1)
  --debug
		log rotation details`)
}

func main() {
	flag.Usage = usage
	flag.TextVar(&canvas, "canvas", imgrotate.CanvasGrow, "")
	flag.TextVar(&edge, "edge", imgrotate.EdgeZero, "")
	flag.TextVar(&format, "format", imgrotate.PNG, "")
	flag.Parse()

	if err := run(); err != nil {
		log.Error("Benchmark failed", "error", err)
		os.Exit(1)
	}
	log.Info("Done.")
}

func run() error {
	if *src == "" {
		flag.Usage()
		return fmt.Errorf("no source image")
	}
	if *debug {
		imgrotate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	b, err := os.ReadFile(*src)
	if err != nil {
		return err
	}
	cfg, name, err := imgrotate.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s: %w", *src, err)
	}
	log.Info("Source", "name", *src, "format", name, "width", cfg.Width, "height", cfg.Height)

	jobs, err := plan(*backend, *kernels)
	if err != nil {
		return err
	}

	rec := newRecorder()
	for _, j := range jobs {
		for i := 0; i < max(*repeat, 1); i++ {
			if err := j.run(rec, b); err != nil {
				log.Error("Rotation failed", "backend", j.backend, "kernel", j.kernel, "error", err)
			}
		}
	}
	return rec.Report(os.Stdout)
}

// newRecorder returns a recorder that logs the start and finish of every stage.
func newRecorder() *stopwatch.Recorder {
	return &stopwatch.Recorder{
		Start: func(stage string) { log.Info("Start", "stage", stage) },
		Finish: func(s stopwatch.Sample) {
			log.Info("Completed", "stage", s.Stage, "elapsed", s.Elapsed)
		},
	}
}

type job struct {
	backend string
	kernel  string
}

// plan expands the backend and kernel lists. Only the engine and xdraw
// backends honour the kernel, so imaging runs once.
func plan(backends, kernels string) (jobs []job, err error) {
	bs := split(backends, imgrotate.BackendNames())
	ks := split(kernels, imgrotate.KernelNames())
	for _, k := range ks {
		if _, err = imgrotate.LookupKernel(k); err != nil {
			return
		}
	}
	for _, b := range bs {
		if _, err = imgrotate.LookupBackend(b); err != nil {
			return
		}
		if strings.EqualFold(b, imgrotate.ImagingBackend) {
			jobs = append(jobs, job{backend: b})
			continue
		}
		for _, k := range ks {
			jobs = append(jobs, job{backend: b, kernel: k})
		}
	}
	return
}

func split(s string, all []string) (res []string) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return all
	}
	for _, i := range strings.Split(s, ",") {
		if i = strings.TrimSpace(i); i != "" {
			res = append(res, i)
		}
	}
	return
}

func (j job) name() string {
	if j.kernel == "" {
		return j.backend
	}
	return j.backend + "/" + j.kernel
}

func (j job) run(rec *stopwatch.Recorder, b []byte) error {
	opts := imgrotate.NewOptions()
	opts.SetAngle(*angle).SetCanvas(canvas).SetEdge(edge)
	opts.Format = imgrotate.FormatOption{Format: format}
	if err := opts.SetBackend(j.backend); err != nil {
		return err
	}
	if j.kernel != "" {
		if err := opts.SetKernel(j.kernel); err != nil {
			return err
		}
	}

	img, err := stopwatch.Record(rec, j.name()+" decode", func() (image.Image, error) {
		return imgrotate.Decode(bytes.NewReader(b), imgrotate.AutoOrientation(*orient))
	})
	if err != nil {
		return err
	}
	rotated, err := stopwatch.Record(rec, j.name()+" rotate", func() (image.Image, error) {
		return imgrotate.RotateImage(img, &opts)
	})
	if err != nil {
		return err
	}
	_, err = stopwatch.Record(rec, j.name()+" encode", func() (struct{}, error) {
		if *dst == "" {
			return struct{}{}, imgrotate.Write(io.Discard, rotated, &opts.Format)
		}
		return struct{}{}, imgrotate.Save(j.output(opts), rotated, &opts.Format)
	})
	return err
}

// output returns the file the job writes under -dst.
func (j job) output(opts imgrotate.Options) string {
	base := strings.TrimSuffix(filepath.Base(*src), filepath.Ext(*src))
	return opts.ConvertExt(filepath.Join(*dst, base+"-"+strings.ReplaceAll(j.name(), "/", "-")+".out"))
}
