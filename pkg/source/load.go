package source

import (
	"context"
	"image"
)

// Options configures Load.
type Options struct {
	// SVGRenderer picks the vector backend; empty means RendererAuto.
	SVGRenderer string
}

// Load reads the image at path and returns it as a non-premultiplied RGBA
// bitmap together with the kind it was classified as.
func Load(ctx context.Context, path string, opts Options) (*image.NRGBA, Kind, error) {
	kind := KindOf(path)

	switch kind {
	case KindVector:
		r, err := NewRasterizer(opts.SVGRenderer)
		if err != nil {
			return nil, kind, err
		}
		img, err := r.Rasterize(ctx, path)
		if err != nil {
			return nil, kind, err
		}
		return toNRGBA(img), kind, nil
	default:
		img, err := decodeRaster(path)
		return img, kind, err
	}
}
