// Package cli implements the ogcreator command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ogcreator/pkg/buildinfo"
	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
	"github.com/matzehuels/ogcreator/pkg/observability"
	"github.com/matzehuels/ogcreator/pkg/pipeline"
	"github.com/matzehuels/ogcreator/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "ogcreator"

// Summary formats accepted by --summary.
const (
	summaryText = "text"
	summaryJSON = "json"
	summaryTOML = "toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the command.
type CLI struct {
	Logger *log.Logger

	// Out receives user-facing status lines and summaries.
	Out io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// runOpts holds the command-line flags.
type runOpts struct {
	verbose     bool
	svgRenderer string
	summary     string
}

// RootCommand creates the ogcreator command. It takes exactly one
// positional argument: the input logo.
func (c *CLI) RootCommand() *cobra.Command {
	opts := runOpts{
		svgRenderer: source.RendererAuto,
		summary:     summaryText,
	}

	root := &cobra.Command{
		Use:   appName + " <input-image>",
		Short: "Generate favicon, logos and an OG preview image from a logo",
		Long: `ogcreator turns one logo (jpg, jpeg, png or svg) into favicon.ico,
logo_40.png, logo_80.png and a 1200x630 og_image.jpg kept under 300KB.

Files go to ./public when that directory exists. Otherwise a new
./og-images directory is created; if og-images already exists the run
aborts instead of overwriting it.`,
		Args:          cobra.ExactArgs(1),
		Version:       buildinfo.Resolved(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := ogerrors.ValidateChoice("svg-renderer", opts.svgRenderer, source.Renderers...); err != nil {
				return err
			}
			return ogerrors.ValidateChoice("summary", opts.summary, summaryText, summaryJSON, summaryTOML)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args[0], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVar(&opts.svgRenderer, "svg-renderer", opts.svgRenderer, "SVG backend: auto, rsvg (librsvg), builtin")
	root.Flags().StringVar(&opts.summary, "summary", opts.summary, "result format: text, json, toml")

	return root
}

// run executes one ogcreator run for input.
func (c *CLI) run(cmd *cobra.Command, input string, opts runOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)

	hooks := &logHooks{logger: logger}
	observability.SetPipelineHooks(hooks)
	observability.SetAssetHooks(hooks)
	defer observability.Reset()

	prog := newProgress(logger)
	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:       input,
		SVGRenderer: opts.svgRenderer,
	})

	if opts.summary == summaryText {
		printResult(c.Out, result)
	}
	if err != nil {
		return err
	}
	prog.done("Run complete")

	return writeSummary(c.Out, opts.summary, result)
}
