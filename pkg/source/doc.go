// Package source loads the input logo into an in-memory bitmap.
//
// The input kind is decided once, from the file extension: ".svg" (any
// case) is a vector input and is rasterized first; everything else is
// handed to the registered raster decoders. Both paths produce an
// *image.NRGBA so the asset generators see a single pixel layout.
//
// # Vector Backends
//
// SVG inputs are rasterized at their intrinsic size by one of:
//
//   - rsvg: the rsvg-convert binary from librsvg (highest fidelity)
//   - builtin: a pure-Go renderer based on oksvg/rasterx
//   - auto: rsvg when installed, builtin otherwise
//
// Asking for rsvg when rsvg-convert is not on PATH fails with
// MISSING_CAPABILITY, which is distinct from a malformed file.
//
// # Raster Formats
//
// PNG, JPEG and GIF come from the standard library; BMP, TIFF and WebP
// from golang.org/x/image.
package source
