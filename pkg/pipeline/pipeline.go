// Package pipeline runs the complete og-creator flow:
//
//  1. Resolve: pick the output directory (public, or a fresh og-images)
//  2. Load: decode or rasterize the input logo
//  3. Generate: favicon.ico, logo_40.png, logo_80.png, og_image.jpg
//
// The stages run in that order. A failure in Resolve stops the run before
// any decoding. A failure later stops the run too, but nothing is rolled
// back: a created og-images directory and any files already written stay
// on disk.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Input: "logo.svg"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Assets {
//	    fmt.Println(a.Path)
//	}
package pipeline

import (
	"os"
	"time"

	"github.com/matzehuels/ogcreator/pkg/assets"
	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
	"github.com/matzehuels/ogcreator/pkg/source"
)

// Options contains all configuration for a run.
type Options struct {
	// Input is the path of the logo image.
	Input string `json:"input"`

	// WorkDir is where public/ or og-images/ is looked up. Defaults to the
	// process working directory.
	WorkDir string `json:"work_dir,omitempty"`

	// SVGRenderer selects the vector backend (auto, rsvg, builtin).
	SVGRenderer string `json:"svg_renderer,omitempty"`
}

// Result contains the outcome of a run. On failure Execute still returns
// the partial result so callers can report what was written.
type Result struct {
	Input     string         `json:"input"`
	Kind      string         `json:"kind"`
	OutputDir string         `json:"output_dir"`
	Created   bool           `json:"created"`
	Assets    []assets.Asset `json:"assets"`
	Stats     Stats          `json:"stats"`
}

// Stats contains run statistics.
type Stats struct {
	SourceWidth  int           `json:"source_width"`
	SourceHeight int           `json:"source_height"`
	LoadTime     time.Duration `json:"load_time"`
	GenerateTime time.Duration `json:"generate_time"`
}

// ValidateAndSetDefaults checks required fields and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Input == "" {
		return ogerrors.New(ogerrors.ErrCodeInvalidInput, "input image is required")
	}
	if o.SVGRenderer == "" {
		o.SVGRenderer = source.RendererAuto
	}
	if err := ogerrors.ValidateChoice("svg-renderer", o.SVGRenderer, source.Renderers...); err != nil {
		return err
	}
	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ogerrors.Wrap(ogerrors.ErrCodeIO, err, "determine working directory")
		}
		o.WorkDir = wd
	}
	return nil
}
