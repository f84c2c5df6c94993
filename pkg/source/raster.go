package source

import (
	"errors"
	"image"
	"os"

	// Registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
)

// decodeRaster decodes the file at path with whichever registered decoder
// recognizes its header. The extension plays no part here.
func decodeRaster(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ogerrors.Wrap(ogerrors.ErrCodeDecode, err, "open %s", path)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ogerrors.Wrap(ogerrors.ErrCodeUnsupportedFormat, err, "decode %s", path)
		}
		return nil, ogerrors.Wrap(ogerrors.ErrCodeDecode, err, "decode %s", path)
	}
	return toNRGBA(img), nil
}

// toNRGBA returns img as *image.NRGBA anchored at the origin. Sources with
// no alpha channel come out fully opaque.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
