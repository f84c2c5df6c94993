package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
)

const redRectSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="32" viewBox="0 0 64 32">
  <rect x="0" y="0" width="64" height="32" fill="#ff0000"/>
</svg>`

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"logo.svg", KindVector},
		{"LOGO.SVG", KindVector},
		{"dir.svg/logo.Svg", KindVector},
		{"logo.png", KindRaster},
		{"logo.JPEG", KindRaster},
		{"logo.jpg", KindRaster},
		{"logo.webp", KindRaster},
		{"logo", KindRaster},
		{"logo.svg.png", KindRaster},
	}

	for _, tt := range tests {
		if got := KindOf(tt.path); got != tt.want {
			t.Errorf("KindOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadPNGKeepsSizeAndAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	path := writePNG(t, "logo.png", src)

	img, kind, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if kind != KindRaster {
		t.Errorf("kind = %v, want raster", kind)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 30x20", b)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("pixel = %v, want translucent source pixel", got)
	}
}

func TestLoadJPEGAddsOpaqueAlpha(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 17, 9))
	for i := range src.Pix {
		src.Pix[i] = 128
	}
	path := filepath.Join(t.TempDir(), "photo.JPG")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, src, nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, _, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 17 || b.Dy() != 9 {
		t.Errorf("bounds = %v, want 17x9", b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d, want 255", i, img.Pix[i])
		}
	}
}

func TestLoadCorruptPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Load(context.Background(), path, Options{})
	if err == nil {
		t.Fatal("Load() should fail on corrupt input")
	}
	if !ogerrors.Is(err, ogerrors.ErrCodeUnsupportedFormat) {
		t.Errorf("error = %v, want UNSUPPORTED_FORMAT", err)
	}
	if !errors.Is(err, image.ErrFormat) {
		t.Errorf("error should wrap image.ErrFormat, got %v", err)
	}
}

func TestLoadTruncatedPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	path := writePNG(t, "logo.png", src)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err = Load(context.Background(), path, Options{})
	if !ogerrors.Is(err, ogerrors.ErrCodeDecode) {
		t.Errorf("error = %v, want DECODE_ERROR", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"), Options{})
	if !ogerrors.Is(err, ogerrors.ErrCodeDecode) {
		t.Errorf("error = %v, want DECODE_ERROR", err)
	}
}

func TestLoadSVGBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.SVG")
	if err := os.WriteFile(path, []byte(redRectSVG), 0o644); err != nil {
		t.Fatal(err)
	}

	img, kind, err := Load(context.Background(), path, Options{SVGRenderer: RendererBuiltin})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if kind != KindVector {
		t.Errorf("kind = %v, want vector", kind)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds = %v, want 64x32", b)
	}
	if c := img.NRGBAAt(32, 16); c.A != 255 || c.R < 200 {
		t.Errorf("center pixel = %v, want opaque red", c)
	}
}

func TestRSVGMissingCapability(t *testing.T) {
	withoutRSVG(t)

	path := filepath.Join(t.TempDir(), "logo.svg")
	if err := os.WriteFile(path, []byte(redRectSVG), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Load(context.Background(), path, Options{SVGRenderer: RendererRSVG})
	if !ogerrors.Is(err, ogerrors.ErrCodeMissingCapability) {
		t.Errorf("error = %v, want MISSING_CAPABILITY", err)
	}
}

func TestAutoFallsBackToBuiltin(t *testing.T) {
	withoutRSVG(t)

	r, err := NewRasterizer(RendererAuto)
	if err != nil {
		t.Fatalf("NewRasterizer(auto) error: %v", err)
	}
	if r.Name() != RendererBuiltin {
		t.Errorf("Name() = %q, want %q", r.Name(), RendererBuiltin)
	}
}

func TestNewRasterizerUnknown(t *testing.T) {
	_, err := NewRasterizer("inkscape")
	if !ogerrors.Is(err, ogerrors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadSVGBuiltinUsesDocumentSize(t *testing.T) {
	tests := []struct {
		name         string
		svg          string
		wantW, wantH int
	}{
		{
			name:  "width and height override viewBox",
			svg:   `<svg xmlns="http://www.w3.org/2000/svg" width="512" height="512" viewBox="0 0 24 24"><rect width="24" height="24" fill="#00f"/></svg>`,
			wantW: 512, wantH: 512,
		},
		{
			name:  "width only keeps viewBox aspect",
			svg:   `<svg xmlns="http://www.w3.org/2000/svg" width="200" viewBox="0 0 40 10"><rect width="40" height="10" fill="#00f"/></svg>`,
			wantW: 200, wantH: 50,
		},
		{
			name:  "no viewBox",
			svg:   `<svg xmlns="http://www.w3.org/2000/svg" width="300" height="100"><rect width="300" height="100" fill="#00f"/></svg>`,
			wantW: 300, wantH: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "icon.svg")
			if err := os.WriteFile(path, []byte(tt.svg), 0o644); err != nil {
				t.Fatal(err)
			}
			img, _, err := Load(context.Background(), path, Options{SVGRenderer: RendererBuiltin})
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Fatalf("bounds = %v, want %dx%d", b, tt.wantW, tt.wantH)
			}
			// The shape is scaled to the target, not drawn in a corner.
			if c := img.NRGBAAt(tt.wantW-2, tt.wantH-2); c.A != 255 || c.B < 200 {
				t.Errorf("bottom-right pixel = %v, want opaque blue", c)
			}
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"64", 64},
		{" 64px ", 64},
		{"72pt", 96},
		{"1in", 96},
		{"2.54cm", 96},
		{"50%", 0},
		{"2em", 0},
		{"", 0},
		{"-3", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		got := parseLength(tt.in)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("parseLength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIntrinsicSize(t *testing.T) {
	tests := []struct {
		dw, dh, vw, vh float64
		wantW, wantH   int
	}{
		{0, 0, 64, 32, 64, 32},
		{0, 0, 10.2, 3.5, 11, 4},
		{512, 512, 24, 24, 512, 512},
		{0, 90, 40, 20, 180, 90},
		{300, 100, 0, 0, 300, 100},
		{300, 0, 0, 0, fallbackSVGSize, fallbackSVGSize},
		{0, 0, 0, 0, fallbackSVGSize, fallbackSVGSize},
		{0, 0, 100, 0, fallbackSVGSize, fallbackSVGSize},
		{0, 0, -5, 20, fallbackSVGSize, fallbackSVGSize},
	}

	for _, tt := range tests {
		w, h := intrinsicSize(tt.dw, tt.dh, tt.vw, tt.vh)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("intrinsicSize(%v, %v, %v, %v) = %dx%d, want %dx%d",
				tt.dw, tt.dh, tt.vw, tt.vh, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestRSVGMissingCapabilityIsOneLine(t *testing.T) {
	withoutRSVG(t)

	_, err := NewRasterizer(RendererRSVG)
	if err == nil {
		t.Fatal("NewRasterizer(rsvg) should fail without rsvg-convert")
	}
	if msg := ogerrors.UserMessage(err); strings.Contains(msg, "\n") {
		t.Errorf("message spans lines: %q", msg)
	}
}

func TestRSVGCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.svg")
	if err := os.WriteFile(path, []byte(redRectSVG), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rsvgRasterizer{}.Rasterize(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoadSVGRSVG(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}

	path := filepath.Join(t.TempDir(), "logo.svg")
	if err := os.WriteFile(path, []byte(redRectSVG), 0o644); err != nil {
		t.Fatal(err)
	}

	img, kind, err := Load(context.Background(), path, Options{SVGRenderer: RendererRSVG})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if kind != KindVector {
		t.Errorf("kind = %v, want vector", kind)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds = %v, want 64x32", b)
	}
	if c := img.NRGBAAt(32, 16); c.A != 255 || c.R < 200 || c.G > 50 {
		t.Errorf("center pixel = %v, want opaque red", c)
	}
}

func withoutRSVG(t *testing.T) {
	t.Helper()
	old := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	t.Cleanup(func() { lookPath = old })
}

func writePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}
