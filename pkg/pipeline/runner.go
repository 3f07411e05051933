package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/titlecard/pkg/assets"
	"github.com/matzehuels/titlecard/pkg/cache"
	"github.com/matzehuels/titlecard/pkg/layout"
	"github.com/matzehuels/titlecard/pkg/observability"
	"github.com/matzehuels/titlecard/pkg/publish"
	"github.com/matzehuels/titlecard/pkg/render"
	"github.com/matzehuels/titlecard/pkg/style"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds only shared read-only state (registry, asset store) and
// the cache. Multiple goroutines can safely use the same Runner; every
// render draws on its own canvas.
type Runner struct {
	Registry *style.Registry
	Assets   *assets.Store
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(reg *style.Registry, store *assets.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Registry: reg,
		Assets:   store,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute renders one card.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	// Stage 1: Resolve
	d, ok := r.Registry.Lookup(opts.Style)
	if !ok {
		d = r.Registry.Default()
		logger.Debug("unknown style, using default", "requested", opts.Style, "style", d.Key)
	}
	result := &Result{Descriptor: d, Fallback: !ok}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Load assets
	loadStart := time.Now()
	font, bg, err := r.load(d)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnAssetsLoaded(ctx, d.Key, result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}

	// Stage 3: Layout
	text := layout.Prepare(opts.Title, d)
	result.Lines = text.Lines
	result.FontSize = text.FontSize

	requested := opts.Style
	if requested == "" {
		requested = d.Key
	}
	size := bg.Image.Bounds().Size()
	result.Card = publish.Card{
		Style:   d.Key,
		Title:   opts.Title,
		AltText: publish.AltText(requested, opts.Title),
		Format:  opts.Format,
		Width:   size.X,
		Height:  size.Y,
	}

	key := r.Keyer.CardKey(cache.CardKeyOpts{
		Fingerprint:    d.Fingerprint(),
		FontHash:       font.Hash,
		BackgroundHash: bg.Hash,
		Title:          opts.Title,
		Format:         opts.Format,
	})

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache lookup failed", "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "card")
			result.Card.Data = data
			result.CacheHit = true
			result.Stats.Total = time.Since(start)
			logger.Debug("card from cache", "style", d.Key, "bytes", len(data))
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "card")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Render and encode
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, d.Key, opts.Format)
	data, err := r.draw(bg, font, text, d, render.Format(opts.Format))
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, d.Key, opts.Format, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Card.Data = data

	logger.Info("rendered card",
		"style", d.Key,
		"mode", d.Mode,
		"lines", len(text.Lines),
		"size", text.FontSize,
		"duration", result.Stats.RenderTime)

	if err := r.Cache.Set(ctx, key, data, cache.TTLCard); err != nil {
		logger.Warn("cache store failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "card", len(data))
	}

	result.Stats.Total = time.Since(start)
	return result, nil
}

// ExecuteBatch renders several cards concurrently with at most workers
// renders in flight. Results keep the order of reqs. The first failure
// cancels the remaining work and is returned.
func (r *Runner) ExecuteBatch(ctx context.Context, reqs []Options, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	results := make([]*Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, opts := range reqs {
		g.Go(func() error {
			res, err := r.Execute(ctx, opts)
			if err != nil {
				return fmt.Errorf("card %d (%s %q): %w", i+1, opts.Style, opts.Title, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Preload loads the assets of every registered style.
func (r *Runner) Preload(ctx context.Context) error {
	return r.Assets.Preload(ctx, r.Registry.Descriptors())
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) load(d style.Descriptor) (*assets.Font, *assets.Background, error) {
	bg, err := r.Assets.Background(d.Background)
	if err != nil {
		return nil, nil, err
	}
	font, err := r.Assets.Font(d.Font)
	if err != nil {
		return nil, nil, err
	}
	return font, bg, nil
}

func (r *Runner) draw(bg *assets.Background, font *assets.Font, text layout.Text, d style.Descriptor, f render.Format) ([]byte, error) {
	img, err := render.Render(bg.Image, font.Font, text, d)
	if err != nil {
		return nil, err
	}
	return render.EncodeBytes(img, f)
}
