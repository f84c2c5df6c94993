// Package pkg provides the libraries behind ogcreator, which turns a single
// logo into the standard set of web assets.
//
// # Architecture
//
// The data flow of a run:
//
//	logo.{png,jpg,svg,...}
//	         ↓
//	    [output] pick public/ or create og-images/
//	         ↓
//	    [source] decode or rasterize to *image.NRGBA
//	         ↓
//	    [assets] favicon.ico, logo_40.png, logo_80.png, og_image.jpg
//
// [pipeline] sequences those steps and returns per-asset outcomes.
// [errors] carries the coded failures the CLI maps to exit status, and
// [observability] exposes hooks for the per-asset and per-quality events.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/ogcreator/pkg/pipeline"
//	)
//
//	result, err := pipeline.NewRunner(nil).Execute(context.Background(), pipeline.Options{
//	    Input: "logo.svg",
//	})
//
// Using the generators directly against a known directory:
//
//	img, _, _ := source.Load(ctx, "logo.png", source.Options{})
//	dir := output.Dir{Path: "static"}
//	assets.Favicon(ctx, img, dir)
//	assets.PreviewImage(ctx, img, dir)
package pkg
