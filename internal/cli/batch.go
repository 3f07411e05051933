package cli

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/pipeline"
	"github.com/matzehuels/titlecard/pkg/publish"
)

// batchFile is the TOML layout of a batch file:
//
//	format = "png"
//
//	[[card]]
//	style = "TOS"
//	title = "The Cage"
type batchFile struct {
	Format string      `toml:"format"`
	Cards  []batchCard `toml:"card"`
}

type batchCard struct {
	Style  string `toml:"style"`
	Title  string `toml:"title"`
	Format string `toml:"format"`
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		outDir  string
		workers int
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "batch [cards.toml]",
		Short: "Render every card listed in a TOML file",
		Long: `Render every card listed in a TOML file.

Cards render concurrently and are written to --out-dir as <style>-<slug>.<ext>
with the alt text in a .txt file next to each image. The first failure stops
the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := readBatch(args[0])
			if err != nil {
				return err
			}
			for i := range reqs {
				reqs[i].Refresh = refresh
			}
			return c.runBatch(cmd.Context(), reqs, outDir, workers, noCache)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "cards", "output directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", pipeline.DefaultWorkers, "concurrent renders")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cards are cached")

	return cmd
}

// readBatch parses a batch file into pipeline options.
func readBatch(path string) ([]pipeline.Options, error) {
	var f batchFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse batch file %s", path)
	}
	if len(f.Cards) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "batch file %s has no [[card]] entries", path)
	}

	reqs := make([]pipeline.Options, len(f.Cards))
	for i, card := range f.Cards {
		format := card.Format
		if format == "" {
			format = f.Format
		}
		reqs[i] = pipeline.Options{Style: card.Style, Title: card.Title, Format: format}
	}
	return reqs, nil
}

// runBatch renders reqs and publishes every card to outDir.
func (c *CLI) runBatch(ctx context.Context, reqs []pipeline.Options, outDir string, workers int, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pub, err := publish.NewDirPublisher(outDir)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d cards...", len(reqs)))
	spinner.Start()

	for i := range reqs {
		reqs[i].Logger = c.Logger
	}
	results, err := runner.ExecuteBatch(ctx, reqs, workers)
	if err != nil {
		spinner.StopWithError("Batch failed")
		return err
	}
	spinner.Stop()

	hits := 0
	for _, res := range results {
		path, err := pub.Publish(ctx, res.Card)
		if err != nil {
			return err
		}
		if res.CacheHit {
			hits++
		}
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %d cards", len(results)))
	printSuccess("Wrote %d cards to %s", len(results), outDir)
	printDetail("%d from cache", hits)
	return nil
}
