package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ogcreator/pkg/assets"
	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
	"github.com/matzehuels/ogcreator/pkg/observability"
	"github.com/matzehuels/ogcreator/pkg/output"
	"github.com/matzehuels/ogcreator/pkg/source"
)

// Runner executes runs. It holds no per-run state.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs resolve → load → generate.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{Input: opts.Input, Kind: source.KindOf(opts.Input).String()}

	// Stage 1: Resolve
	dir, err := output.Resolve(opts.WorkDir)
	observability.Pipeline().OnResolve(ctx, dir.Path, dir.Created, err)
	if err != nil {
		return result, err
	}
	result.OutputDir = dir.Path
	result.Created = dir.Created
	if dir.Created {
		r.Logger.Info("created output directory", "path", dir.Path)
	} else {
		r.Logger.Info("using existing output directory", "path", dir.Path)
	}

	// Stage 2: Load
	img, err := r.load(ctx, opts, result)
	if err != nil {
		return result, err
	}

	// Stage 3: Generate
	genStart := time.Now()
	err = r.generate(ctx, img, dir, result)
	result.Stats.GenerateTime = time.Since(genStart)
	if err != nil {
		return result, err
	}

	r.Logger.Info("generated assets",
		"count", len(result.Assets),
		"duration", result.Stats.GenerateTime)

	return result, nil
}

func (r *Runner) load(ctx context.Context, opts Options, result *Result) (*image.NRGBA, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input, result.Kind)

	start := time.Now()
	err := ogerrors.ValidateInputPath(opts.Input)
	var img *image.NRGBA
	if err == nil {
		img, _, err = source.Load(ctx, opts.Input, source.Options{SVGRenderer: opts.SVGRenderer})
	}
	result.Stats.LoadTime = time.Since(start)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Input, 0, 0, result.Stats.LoadTime, err)
		return nil, err
	}

	b := img.Bounds()
	result.Stats.SourceWidth, result.Stats.SourceHeight = b.Dx(), b.Dy()
	hooks.OnLoadComplete(ctx, opts.Input, b.Dx(), b.Dy(), result.Stats.LoadTime, nil)

	r.Logger.Info("loaded input",
		"path", opts.Input,
		"kind", result.Kind,
		"size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"duration", result.Stats.LoadTime)
	return img, nil
}

// generate runs every generator in order, appending each written asset to
// result. It stops at the first failure.
func (r *Runner) generate(ctx context.Context, img image.Image, dir output.Dir, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	favicon, err := assets.Favicon(ctx, img, dir)
	if err != nil {
		return err
	}
	result.Assets = append(result.Assets, favicon)

	if err := ctx.Err(); err != nil {
		return err
	}
	logos, err := assets.LogoVariants(ctx, img, dir)
	result.Assets = append(result.Assets, logos...)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	preview, err := assets.PreviewImage(ctx, img, dir)
	if err != nil {
		return err
	}
	result.Assets = append(result.Assets, preview)
	if preview.OverBudget {
		r.Logger.Warn("preview exceeds size budget at minimum quality",
			"bytes", preview.Bytes, "budget", assets.SizeBudget, "quality", preview.Quality)
	}
	return nil
}
