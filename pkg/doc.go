// Package pkg provides the core libraries for titlecard.
//
// # Overview
//
// Titlecard renders an episode title onto a series-specific background using
// that series' font, colors, placement and text transform. The pkg directory
// is organized leaf-first:
//
//  1. [style] - Style table (TOML) and the registry of immutable descriptors
//  2. [layout] - Quoting, upper-casing, length-based shrink and word wrap
//  3. [gradient] - Vertical two-color fills clipped to a line's box
//  4. [render] - Standard, per-line gradient and staggered drawing; encoding
//  5. [assets] - Load-once font and background store
//  6. [pipeline] - Orchestration (resolve → load → layout → cache → render)
//
// # Architecture
//
//	(style key, title)
//	         ↓
//	    [style] registry (unknown keys resolve to the default style)
//	         ↓
//	    [layout] display text, font size, wrapped lines
//	         ↓
//	    [render] draw on a copy of the background
//	         ↓
//	    PNG/JPEG bytes + alt text → [publish]
//
// # Quick Start
//
//	reg := style.Defaults()
//	store := assets.NewDirStore("assets", nil)
//	runner := pipeline.NewRunner(reg, store, nil, nil, nil)
//
//	res, err := runner.Execute(ctx, pipeline.Options{Style: "TOS", Title: "The Cage"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("tos-the-cage.png", res.Card.Data, 0644)
//
// # Supporting Packages
//
// [cache] - Card cache keyed by style fingerprint, asset hashes, title and
// format. File backend for the CLI; Redis and MongoDB backends for servers.
//
// [fonts] - Embedded fonts addressable as "builtin:goregular" and friends.
//
// [trigger] - Extracts (style, title) requests from announcement text.
//
// [publish] - Publisher interface and a directory publisher.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hooks for metrics and tracing integrations.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include Redis/MongoDB tests
//
// [style]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/style
// [layout]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/layout
// [gradient]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/gradient
// [render]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/render
// [assets]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/assets
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/cache
// [fonts]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/fonts
// [trigger]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/trigger
// [publish]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/publish
// [errors]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/titlecard/pkg/buildinfo
package pkg
