package source

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
)

// SVG renderer names accepted by Options.SVGRenderer.
const (
	RendererAuto    = "auto"
	RendererRSVG    = "rsvg"
	RendererBuiltin = "builtin"
)

// Renderers lists the valid SVG renderer names, default first.
var Renderers = []string{RendererAuto, RendererRSVG, RendererBuiltin}

// fallbackSVGSize is used when an SVG declares neither a size nor a viewBox.
const fallbackSVGSize = 512

// lookPath is swapped out in tests to simulate a missing rsvg-convert.
var lookPath = exec.LookPath

// Rasterizer turns an SVG file into a bitmap at its intrinsic size.
type Rasterizer interface {
	Name() string
	// Available reports whether the backend can run in this environment.
	Available() bool
	Rasterize(ctx context.Context, path string) (image.Image, error)
}

// NewRasterizer returns the backend selected by name. It fails with
// MISSING_CAPABILITY when rsvg is requested but not installed.
func NewRasterizer(name string) (Rasterizer, error) {
	switch name {
	case RendererRSVG:
		r := rsvgRasterizer{}
		if !r.Available() {
			return nil, ogerrors.New(ogerrors.ErrCodeMissingCapability,
				"SVG input requires rsvg-convert (brew install librsvg, apt install librsvg2-bin) or --svg-renderer=builtin")
		}
		return r, nil
	case RendererBuiltin:
		return builtinRasterizer{}, nil
	case RendererAuto, "":
		if r := (rsvgRasterizer{}); r.Available() {
			return r, nil
		}
		return builtinRasterizer{}, nil
	default:
		return nil, ogerrors.New(ogerrors.ErrCodeInvalidInput, "unknown SVG renderer %q", name)
	}
}

// =============================================================================
// rsvg-convert
// =============================================================================

type rsvgRasterizer struct{}

func (rsvgRasterizer) Name() string { return RendererRSVG }

func (rsvgRasterizer) Available() bool {
	_, err := lookPath("rsvg-convert")
	return err == nil
}

// Rasterize shells out to rsvg-convert, which renders at the document's
// width/height and writes PNG to stdout. The path is passed as an argument
// so relative hrefs inside the SVG still resolve.
func (rsvgRasterizer) Rasterize(ctx context.Context, path string) (image.Image, error) {
	cmd := exec.CommandContext(ctx, "rsvg-convert", "-f", "png", path)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, ogerrors.Wrap(ogerrors.ErrCodeDecode,
			fmt.Errorf("%w: %s", err, bytes.TrimSpace(errBuf.Bytes())), "rsvg-convert %s", path)
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, ogerrors.Wrap(ogerrors.ErrCodeDecode, err, "read rsvg-convert output for %s", path)
	}
	return img, nil
}

// =============================================================================
// oksvg
// =============================================================================

type builtinRasterizer struct{}

func (builtinRasterizer) Name() string    { return RendererBuiltin }
func (builtinRasterizer) Available() bool { return true }

func (builtinRasterizer) Rasterize(ctx context.Context, path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ogerrors.Wrap(ogerrors.ErrCodeDecode, err, "open %s", path)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, ogerrors.Wrap(ogerrors.ErrCodeDecode, err, "parse SVG %s", path)
	}

	dw, dh := documentSize(data)
	w, h := intrinsicSize(dw, dh, icon.ViewBox.W, icon.ViewBox.H)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)

	return rgba, nil
}

// documentSize returns the width and height attributes of the root <svg>
// element in CSS pixels. Missing, relative or unparseable lengths are 0.
func documentSize(data []byte) (float64, float64) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, 0
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return 0, 0
		}
		var w, h float64
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "width":
				w = parseLength(a.Value)
			case "height":
				h = parseLength(a.Value)
			}
		}
		return w, h
	}
}

// pxPerUnit converts absolute SVG length units to pixels at 96 DPI.
var pxPerUnit = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
}

func parseLength(v string) float64 {
	v = strings.TrimSpace(v)
	i := strings.IndexFunc(v, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' && r != 'e' && r != 'E'
	})
	num, unit := v, ""
	if i >= 0 {
		num, unit = v[:i], strings.ToLower(strings.TrimSpace(v[i:]))
	}
	scale, ok := pxPerUnit[unit]
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f <= 0 || math.IsInf(f, 0) {
		return 0
	}
	return f * scale
}

// intrinsicSize picks the render size from the document's width/height,
// then the viewBox, then a square fallback. A single declared dimension
// takes the other from the viewBox aspect ratio.
func intrinsicSize(dw, dh, vw, vh float64) (int, int) {
	haveBox := vw > 0 && vh > 0
	switch {
	case dw > 0 && dh > 0:
	case dw > 0 && haveBox:
		dh = dw * vh / vw
	case dh > 0 && haveBox:
		dw = dh * vw / vh
	default:
		dw, dh = vw, vh
	}
	w, h := int(math.Ceil(dw)), int(math.Ceil(dh))
	if w <= 0 || h <= 0 {
		return fallbackSVGSize, fallbackSVGSize
	}
	return w, h
}
