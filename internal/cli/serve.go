package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/titlecard/internal/server"
	"github.com/matzehuels/titlecard/pkg/cache"
	"github.com/matzehuels/titlecard/pkg/trigger"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis URL for the shared card cache
	mongo   string // mongodb URI for the shared card cache
	pattern string // trigger pattern for POST /v1/cards/match
	noCache bool   // disable caching
	preload bool   // load every style's assets before serving
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", pattern: trigger.DefaultPattern, preload: true}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve title cards over HTTP",
		Long: `Serve title cards over HTTP.

Routes:
  GET  /healthz
  GET  /v1/styles
  GET  /v1/styles/{key}
  GET  /v1/cards/{style}?title=...&format=png|jpeg
  POST /v1/cards/match   {"text": "Lost TOS Episode: \"The Cage\""}

Cards are cached in the local cache directory unless --redis or --mongo
selects a shared cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis URL for the card cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "mongodb URI for the card cache")
	cmd.Flags().StringVar(&opts.pattern, "pattern", opts.pattern, "trigger pattern for /v1/cards/match")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.preload, "preload", opts.preload, "load all style assets at startup")
	cmd.MarkFlagsMutuallyExclusive("redis", "mongo", "no-cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	reg, err := c.loadRegistry()
	if err != nil {
		return err
	}
	matcher, err := trigger.New(opts.pattern)
	if err != nil {
		return err
	}
	cc, keyer, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := c.newRunnerWithCache(reg, cc, keyer)
	defer runner.Close()

	if opts.preload {
		prog := newProgress(c.Logger)
		if err := runner.Preload(ctx); err != nil {
			return fmt.Errorf("preload assets: %w", err)
		}
		fonts, backgrounds := runner.Assets.Len()
		prog.done(fmt.Sprintf("Loaded %d fonts and %d backgrounds", fonts, backgrounds))
	}

	return server.New(runner, matcher, c.Logger).ListenAndServe(ctx, opts.addr)
}

// serverCache picks the card cache backend. Shared backends namespace their
// keys so several deployments can use one store.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	shared := cache.NewScopedKeyer(nil, appName+":")
	switch {
	case opts.redis != "":
		rc, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis card cache")
		return rc, shared, nil
	case opts.mongo != "":
		mc, err := cache.NewMongoCache(ctx, opts.mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongodb: %w", err)
		}
		c.Logger.Info("using mongodb card cache", "database", cache.DefaultMongoDatabase, "collection", cache.DefaultMongoCollection)
		return mc, shared, nil
	}
	cc, err := newCache(opts.noCache)
	if err != nil {
		return nil, nil, err
	}
	return cc, nil, nil
}
