package assets

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
	"github.com/matzehuels/ogcreator/pkg/observability"
	"github.com/matzehuels/ogcreator/pkg/output"
)

// Preview geometry and size budget.
const (
	PreviewWidth  = 1200
	PreviewHeight = 630

	// SizeBudget is the preferred upper bound for og_image.jpg.
	SizeBudget = 300 * 1024

	StartQuality = 85
	QualityStep  = 5
	// QualityFloor ends the search; the floor itself is written whatever
	// its size.
	QualityFloor = 10
)

// QualitySteps returns the qualities tried against the budget, highest
// first: 85, 80, ..., 15.
func QualitySteps() []int {
	var steps []int
	for q := StartQuality; q > QualityFloor; q -= QualityStep {
		steps = append(steps, q)
	}
	return steps
}

// PreviewImage writes og_image.jpg: the source fitted to 1200x630 by
// scaling to cover and center-cropping, with alpha dropped.
func PreviewImage(ctx context.Context, img image.Image, dir output.Dir) (Asset, error) {
	return track(ctx, PreviewName, func() (Asset, error) {
		flat := flatten(imaging.Fill(img, PreviewWidth, PreviewHeight, imaging.Center, resample))

		res, err := searchQuality(ctx, flat, SizeBudget)
		if err != nil {
			return Asset{}, err
		}

		a, err := writeAsset(dir, PreviewName, res.data, flat.Bounds())
		if err != nil {
			return Asset{}, err
		}
		a.Quality = res.quality
		a.OverBudget = res.overBudget
		return a, nil
	})
}

type searchResult struct {
	data       []byte
	quality    int
	overBudget bool
}

// searchQuality walks QualitySteps and keeps the first encoding that fits
// budget. If none does, it encodes once more at QualityFloor and returns
// that regardless of size.
func searchQuality(ctx context.Context, img image.Image, budget int) (searchResult, error) {
	hooks := observability.Assets()

	for _, q := range QualitySteps() {
		if err := ctx.Err(); err != nil {
			return searchResult{}, err
		}
		data, err := encodeJPEG(img, q)
		if err != nil {
			return searchResult{}, err
		}
		fits := len(data) <= budget
		hooks.OnQualityAttempt(ctx, q, len(data), fits)
		if fits {
			return searchResult{data: data, quality: q}, nil
		}
	}

	data, err := encodeJPEG(img, QualityFloor)
	if err != nil {
		return searchResult{}, err
	}
	hooks.OnQualityAttempt(ctx, QualityFloor, len(data), true)
	return searchResult{data: data, quality: QualityFloor, overBudget: len(data) > budget}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, ogerrors.Wrap(ogerrors.ErrCodeEncode, err, "encode %s at quality %d", PreviewName, quality)
	}
	return buf.Bytes(), nil
}

// flatten returns a copy of img with every pixel made opaque. Color
// channels are kept as stored, not composited onto a background.
func flatten(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
