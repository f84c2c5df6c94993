// Package assets generates the web assets derived from a logo bitmap.
//
// Each generator reads the source bitmap, derives its own resampled copy,
// encodes it and writes a fixed file name into the output directory,
// replacing any file already there. The source bitmap is never modified.
//
// Generated files:
//
//	favicon.ico   16x16, 32x32 and 48x48 frames
//	logo_40.png   40x40 stretch
//	logo_80.png   80x80 stretch (retina)
//	og_image.jpg  1200x630 crop-to-cover, kept under 300 KiB when possible
package assets

import (
	"bytes"
	"context"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
	"github.com/matzehuels/ogcreator/pkg/observability"
	"github.com/matzehuels/ogcreator/pkg/output"
)

// Output file names.
const (
	FaviconName = "favicon.ico"
	Logo40Name  = "logo_40.png"
	Logo80Name  = "logo_80.png"
	PreviewName = "og_image.jpg"
)

// resample is the filter shared by every generator.
var resample = imaging.Lanczos

// Asset describes one written file.
type Asset struct {
	Name    string `json:"name" toml:"name"`
	Path    string `json:"path" toml:"path"`
	Width   int    `json:"width" toml:"width"`
	Height  int    `json:"height" toml:"height"`
	Sizes   []int  `json:"sizes,omitempty" toml:"sizes,omitempty"`
	Bytes   int    `json:"bytes" toml:"bytes"`
	Quality int    `json:"quality,omitempty" toml:"quality,omitempty"`
	// OverBudget is set when the preview hit the quality floor and still
	// exceeds the size budget.
	OverBudget bool `json:"over_budget,omitempty" toml:"over_budget,omitempty"`
}

// writeAsset stores data at dir/name and fills in the common Asset fields.
func writeAsset(dir output.Dir, name string, data []byte, bounds image.Rectangle) (Asset, error) {
	path := dir.Join(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Asset{}, ogerrors.Wrap(ogerrors.ErrCodeEncode, err, "write %s", path)
	}
	return Asset{
		Name:   name,
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Bytes:  len(data),
	}, nil
}

// encodePNG encodes img as a maximally compressed PNG with alpha.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(pngCompression)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// track reports the start and outcome of one asset to the registered hooks.
func track(ctx context.Context, name string, fn func() (Asset, error)) (Asset, error) {
	hooks := observability.Assets()
	hooks.OnAssetStart(ctx, name)
	start := time.Now()
	a, err := fn()
	hooks.OnAssetComplete(ctx, name, a.Bytes, time.Since(start), err)
	return a, err
}
