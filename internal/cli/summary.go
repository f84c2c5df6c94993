package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ogcreator/pkg/assets"
	"github.com/matzehuels/ogcreator/pkg/pipeline"
)

// summary is the machine-readable form of a run, shared by --summary=json
// and --summary=toml. Durations are flattened to milliseconds.
type summary struct {
	Input      string         `json:"input" toml:"input"`
	Kind       string         `json:"kind" toml:"kind"`
	OutputDir  string         `json:"output_dir" toml:"output_dir"`
	Created    bool           `json:"created" toml:"created"`
	Width      int            `json:"source_width" toml:"source_width"`
	Height     int            `json:"source_height" toml:"source_height"`
	LoadMS     int64          `json:"load_ms" toml:"load_ms"`
	GenerateMS int64          `json:"generate_ms" toml:"generate_ms"`
	Assets     []assets.Asset `json:"assets" toml:"assets"`
}

func newSummary(r *pipeline.Result) summary {
	return summary{
		Input:      r.Input,
		Kind:       r.Kind,
		OutputDir:  r.OutputDir,
		Created:    r.Created,
		Width:      r.Stats.SourceWidth,
		Height:     r.Stats.SourceHeight,
		LoadMS:     r.Stats.LoadTime.Milliseconds(),
		GenerateMS: r.Stats.GenerateTime.Milliseconds(),
		Assets:     r.Assets,
	}
}

// writeSummary finishes a successful run in the requested format.
func writeSummary(w io.Writer, format string, r *pipeline.Result) error {
	switch format {
	case summaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newSummary(r))
	case summaryTOML:
		return toml.NewEncoder(w).Encode(newSummary(r))
	default:
		printSuccess(w, "All images have been generated successfully.")
		return nil
	}
}

// printResult reports the output directory and every asset written so far.
// It is also called after a failure so partial output is visible.
func printResult(w io.Writer, r *pipeline.Result) {
	if r == nil || r.OutputDir == "" {
		return
	}
	if r.Created {
		printInfo(w, "Created directory: %s", r.OutputDir)
	} else {
		printInfo(w, "Found 'public' directory. Using it as output directory: %s", r.OutputDir)
	}

	for _, a := range r.Assets {
		printSuccess(w, "%s", describeAsset(a))
		printFile(w, a.Path)
		if a.OverBudget {
			printWarning(w, "%s is %s, above the %s budget even at quality %d",
				a.Name, formatKB(a.Bytes), formatKB(assets.SizeBudget), a.Quality)
		}
	}
	if r.Stats.SourceWidth > 0 {
		printDetail(w, "source %dx%d %s", r.Stats.SourceWidth, r.Stats.SourceHeight, r.Kind)
	}
}

func describeAsset(a assets.Asset) string {
	switch a.Name {
	case assets.FaviconName:
		return fmt.Sprintf("Favicon saved %v", a.Sizes)
	case assets.PreviewName:
		return fmt.Sprintf("OG image saved (quality=%d, size=%s)", a.Quality, formatKB(a.Bytes))
	default:
		return fmt.Sprintf("%dx%d logo saved", a.Width, a.Height)
	}
}

func formatKB(n int) string {
	return fmt.Sprintf("%.2fKB", float64(n)/1024)
}
