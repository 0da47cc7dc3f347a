package imgrotate

import (
	"bytes"
	"flag"
	"image/png"
	"io"
	"strings"
	"testing"
)

func TestFormatFromExtension(t *testing.T) {
	for ext, want := range formatFromExt {
		for _, name := range []string{ext, "." + ext, strings.ToUpper(ext)} {
			if f, err := FormatFromExtension(name); err != nil || f != want {
				t.Errorf("%q: expected %s; got %s, %v", name, want, f, err)
			}
		}
	}
	for _, name := range []string{"txt", "", ".webp"} {
		if _, err := FormatFromExtension(name); err != ErrUnsupportedFormat {
			t.Errorf("%q: expected ErrUnsupportedFormat; got %v", name, err)
		}
	}
}

func TestTextVar(t *testing.T) {
	testCase1 := []struct {
		argument string
		format   Format
	}{
		{"Jpg", JPEG},
		{"TIFF", TIFF},
		{"bmp", BMP},
		{"txt", Format(-1)},
	}
	for _, tc := range testCase1 {
		f := flag.NewFlagSet("test", flag.ContinueOnError)
		f.SetOutput(io.Discard)
		var format Format
		f.TextVar(&format, "f", Format(-1), "")
		f.Parse(append([]string{"-f"}, tc.argument))
		if format != tc.format {
			t.Errorf("expected %s format; got %s", tc.format, format)
		}
	}
	testCase2 := []struct {
		argument    string
		compression TIFFCompression
	}{
		{"none", TIFFUncompressed},
		{"Deflate", TIFFDeflate},
		{"lzw", TIFFCompression(-1)},
	}
	for _, tc := range testCase2 {
		f := flag.NewFlagSet("test", flag.ContinueOnError)
		f.SetOutput(io.Discard)
		var compression TIFFCompression
		f.TextVar(&compression, "c", TIFFCompression(-1), "")
		f.Parse(append([]string{"-c"}, tc.argument))
		if compression != tc.compression {
			t.Errorf("expected %d compression; got %d", tc.compression, compression)
		}
	}
	if _, err := Format(-1).MarshalText(); err == nil {
		t.Error("marshal unknown format want error")
	}
}

func TestEncode(t *testing.T) {
	options := map[Format][][]EncodeOption{
		JPEG: {{Quality(40)}, nil},
		PNG:  {{PNGCompressionLevel(png.BestSpeed)}},
		GIF:  {{GIFNumColors(64)}},
		TIFF: {{TIFFCompressionType(TIFFDeflate)}, {TIFFCompressionType(TIFFUncompressed)}},
		PDF:  {{Quality(90)}},
	}

	src := gradient(37, 23, 3).Image()
	for format, ext := range formatExts {
		cases := options[format]
		if len(cases) == 0 {
			cases = [][]EncodeOption{nil}
		}
		for _, opts := range cases {
			var buf bytes.Buffer
			if err := (&FormatOption{format, opts}).Encode(&buf, src); err != nil {
				t.Fatalf("%s: %v", ext, err)
			}
			img, err := Decode(&buf)
			if err != nil {
				t.Fatalf("%s: %v", ext, err)
			}
			if got := img.Bounds().Size(); got != src.Bounds().Size() {
				t.Errorf("%s: expected size %v; got %v", ext, src.Bounds().Size(), got)
			}
		}
	}

	if err := (&FormatOption{Format: -1}).Encode(io.Discard, src); err == nil {
		t.Error("encode unsupported format expect an error")
	}
	if err := (&FormatOption{Format: PDF + 1}).Encode(io.Discard, src); err == nil {
		t.Error("encode unknown format expect an error")
	}
}
