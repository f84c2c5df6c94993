package assets

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
	"github.com/matzehuels/ogcreator/pkg/output"
)

// FaviconSizes are the square frame sizes embedded in favicon.ico.
var FaviconSizes = []int{16, 32, 48}

// Favicon writes favicon.ico with one frame per FaviconSizes entry.
func Favicon(ctx context.Context, img image.Image, dir output.Dir) (Asset, error) {
	return track(ctx, FaviconName, func() (Asset, error) {
		frames := make([]image.Image, len(FaviconSizes))
		for i, s := range FaviconSizes {
			frames[i] = imaging.Resize(img, s, s, resample)
		}

		var buf bytes.Buffer
		if err := ico.EncodeAll(&buf, frames); err != nil {
			return Asset{}, ogerrors.Wrap(ogerrors.ErrCodeEncode, err, "encode %s", FaviconName)
		}

		largest := FaviconSizes[len(FaviconSizes)-1]
		a, err := writeAsset(dir, FaviconName, buf.Bytes(), image.Rect(0, 0, largest, largest))
		if err != nil {
			return Asset{}, err
		}
		a.Sizes = append([]int(nil), FaviconSizes...)
		return a, nil
	})
}
