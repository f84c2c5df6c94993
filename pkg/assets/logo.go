package assets

import (
	"context"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
	"github.com/matzehuels/ogcreator/pkg/output"
)

const pngCompression = png.BestCompression

// logoVariants maps output names to their square edge length.
var logoVariants = []struct {
	name string
	size int
}{
	{Logo40Name, 40},
	{Logo80Name, 80},
}

// LogoVariants writes logo_40.png and logo_80.png. The source is stretched
// to each square, so non-square logos are distorted rather than cropped.
func LogoVariants(ctx context.Context, img image.Image, dir output.Dir) ([]Asset, error) {
	out := make([]Asset, 0, len(logoVariants))
	for _, v := range logoVariants {
		a, err := track(ctx, v.name, func() (Asset, error) {
			dst := imaging.Resize(img, v.size, v.size, resample)
			data, err := encodePNG(dst)
			if err != nil {
				return Asset{}, ogerrors.Wrap(ogerrors.ErrCodeEncode, err, "encode %s", v.name)
			}
			return writeAsset(dir, v.name, data, dst.Bounds())
		})
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, nil
}
