// Package observability provides hooks for instrumenting an og-creator run.
//
// Libraries emit events through the registered hooks; the CLI registers an
// implementation that turns them into debug logs. Nothing is registered by
// default, so library users pay only for a no-op call.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetAssetHooks(&myAssetHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Assets().OnAssetStart(ctx, "og_image.jpg")
//	// ... encode ...
//	observability.Assets().OnAssetComplete(ctx, "og_image.jpg", size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the run orchestrator.
type PipelineHooks interface {
	// OnResolve fires once the output directory is known.
	OnResolve(ctx context.Context, dir string, created bool, err error)

	// Load events
	OnLoadStart(ctx context.Context, path, kind string)
	OnLoadComplete(ctx context.Context, path string, width, height int, duration time.Duration, err error)
}

// =============================================================================
// Asset Hooks
// =============================================================================

// AssetHooks receives events from the asset generators.
type AssetHooks interface {
	// OnAssetStart records that generation of name began.
	OnAssetStart(ctx context.Context, name string)

	// OnAssetComplete records the outcome of one asset. size is the number
	// of bytes written, zero on failure.
	OnAssetComplete(ctx context.Context, name string, size int, duration time.Duration, err error)

	// OnQualityAttempt records one step of the preview size-budget search.
	OnQualityAttempt(ctx context.Context, quality, size int, accepted bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnResolve(context.Context, string, bool, error)                         {}
func (NoopPipelineHooks) OnLoadStart(context.Context, string, string)                            {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}

// NoopAssetHooks is a no-op implementation of AssetHooks.
type NoopAssetHooks struct{}

func (NoopAssetHooks) OnAssetStart(context.Context, string)                               {}
func (NoopAssetHooks) OnAssetComplete(context.Context, string, int, time.Duration, error) {}
func (NoopAssetHooks) OnQualityAttempt(context.Context, int, int, bool)                   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	assetHooks    AssetHooks    = NoopAssetHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetAssetHooks registers custom asset hooks. Nil is ignored.
func SetAssetHooks(h AssetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		assetHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Assets returns the registered asset hooks.
func Assets() AssetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return assetHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	assetHooks = NoopAssetHooks{}
}
