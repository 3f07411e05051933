// Package pipeline turns a (style, title) request into an encoded title card.
//
// This package implements the complete resolve → load → layout → render →
// encode pipeline shared by the CLI and the HTTP server, so both entry points
// resolve styles, cache cards and report errors the same way.
//
// # Stages
//
//  1. Resolve: look up the style key; unknown or empty keys use the default
//     style.
//  2. Load: fetch the style's font and background from the asset store. A
//     missing or broken asset fails here, before any drawing.
//  3. Layout: transform, size and wrap the title.
//  4. Render: draw the text with the style's render mode and encode it.
//
// Rendered cards are cached under a key derived from the style, both asset
// hashes, the title and the format.
//
// # Usage
//
//	runner := pipeline.NewRunner(registry, store, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Style: "TOS",
//	    Title: "The Cage",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = publisher.Publish(ctx, result.Card)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/publish"
	"github.com/matzehuels/titlecard/pkg/render"
	"github.com/matzehuels/titlecard/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the default output encoding.
	DefaultFormat = render.PNG

	// DefaultWorkers bounds concurrent renders in a batch.
	DefaultWorkers = 4
)

// =============================================================================
// Options
// =============================================================================

// Options describes one card request.
type Options struct {
	Style   string // style key; unknown or empty selects the default style
	Title   string
	Format  string // "png" (default) or "jpeg"
	Refresh bool   // skip the cache lookup and overwrite the entry

	Logger *log.Logger
}

// ValidateAndSetDefaults validates the request and fills in defaults. The
// style key is trimmed and never rejected: keys the registry does not know
// resolve to the default style. The title is kept as given.
func (o *Options) ValidateAndSetDefaults() error {
	o.Style = strings.TrimSpace(o.Style)
	if err := errors.ValidateTitle(o.Title); err != nil {
		return err
	}
	f, err := render.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = string(f)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is a rendered card plus what went into it.
type Result struct {
	Card       publish.Card
	Descriptor style.Descriptor
	Lines      []string // wrapped display lines
	FontSize   int
	Fallback   bool // the requested style was unknown and the default was used
	CacheHit   bool
	Stats      Stats
}

// Stats records stage timings.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration // drawing and encoding; zero on a cache hit
	Total      time.Duration
}
