package source

import (
	"path/filepath"
	"strings"
)

// Kind tells the loader which decoding path an input takes.
type Kind int

const (
	KindRaster Kind = iota
	KindVector
)

// String returns the lowercase name used in logs and summaries.
func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	default:
		return "raster"
	}
}

// KindOf classifies path by its extension, ignoring case.
func KindOf(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return KindVector
	}
	return KindRaster
}
