package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/pipeline"
	"github.com/matzehuels/titlecard/pkg/publish"
	"github.com/matzehuels/titlecard/pkg/render"
	"github.com/matzehuels/titlecard/pkg/trigger"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	style   string // style key; unknown keys use the default style
	title   string // episode title
	post    string // post text to extract style and title from
	pattern string // custom trigger pattern for --post
	output  string // output file; defaults to <style>-<slug>.<ext>
	format  string // png or jpeg; inferred from --output when empty
	noCache bool   // disable the card cache
	refresh bool   // re-render even if cached
	altText bool   // write the alt text next to the image
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [title]",
		Short: "Render a title card",
		Long: `Render a title card.

The title comes from --title, the first argument, or --post. With --post the
style and title are extracted from announcement text such as

  Lost TOS Episode: "The Cage"

The output format follows --format, then the --output extension, then PNG.
Cards are cached locally; --refresh re-renders and --no-cache skips the cache.`,
		Example: `  titlecard render --style TOS "The Cage"
  titlecard render --style VOY --title "Timeless" -o timeless.jpg
  titlecard render --post 'Lost DS9 Episode: "Duet"'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.title != "" {
					return errors.New(errors.ErrCodeInvalidInput, "title given both as argument and --title")
				}
				opts.title = args[0]
			}
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.style, "style", "s", "", "style key (default style if empty or unknown)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "episode title")
	cmd.Flags().StringVar(&opts.post, "post", "", "post text to extract the style and title from")
	cmd.Flags().StringVar(&opts.pattern, "pattern", trigger.DefaultPattern, "regular expression for --post (groups: style, title)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if the card is cached")
	cmd.Flags().BoolVar(&opts.altText, "alt-text", false, "write the alt text to <output>.txt")
	_ = cmd.RegisterFlagCompletionFunc("style", c.completeStyles)

	return cmd
}

// runRender resolves the request, renders the card and writes it.
func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	req, err := resolveRequest(opts)
	if err != nil {
		return err
	}
	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %q...", req.Title))
	spinner.Start()

	res, err := runner.Execute(ctx, pipeline.Options{
		Style:   req.Style,
		Title:   req.Title,
		Format:  string(format),
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if res.Fallback {
		printWarning("Unknown style %q, used %s", req.Style, res.Descriptor.Key)
	}

	output := opts.output
	if output == "" {
		output = publish.FileName(res.Card.Style, res.Card.Title) + "." + format.Extension()
	}
	if err := writeCard(output, res.Card, opts.altText); err != nil {
		return err
	}

	printSuccess("Rendered %s card", res.Descriptor.Key)
	printStats(res)
	printFile(output)
	printDetail("Alt text: %s", res.Card.AltText)
	return nil
}

// resolveRequest picks the style and title from flags or post text.
func resolveRequest(opts renderOpts) (trigger.Request, error) {
	if opts.post == "" {
		if strings.TrimSpace(opts.title) == "" {
			return trigger.Request{}, errors.New(errors.ErrCodeInvalidTitle, "a title is required (argument, --title or --post)")
		}
		return trigger.Request{Style: opts.style, Title: opts.title}, nil
	}
	if opts.title != "" {
		return trigger.Request{}, errors.New(errors.ErrCodeInvalidInput, "--post cannot be combined with a title")
	}

	m, err := trigger.New(opts.pattern)
	if err != nil {
		return trigger.Request{}, err
	}
	req, ok := m.Match(opts.post)
	if !ok {
		return trigger.Request{}, errors.New(errors.ErrCodeInvalidInput, "no card request found in post text")
	}
	if opts.style != "" {
		req.Style = opts.style
	}
	return req, nil
}

// resolveFormat applies --format, then the output extension, then PNG.
func resolveFormat(flag, output string) (render.Format, error) {
	if flag != "" {
		return render.ParseFormat(flag)
	}
	if output != "" && filepath.Ext(output) != "" {
		return render.FormatFromPath(output)
	}
	return render.PNG, nil
}

// writeCard writes the image and, optionally, the alt text sidecar.
func writeCard(path string, card publish.Card, altText bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, card.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if altText {
		alt := strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
		if err := os.WriteFile(alt, []byte(card.AltText+"\n"), 0644); err != nil {
			return fmt.Errorf("write %s: %w", alt, err)
		}
	}
	return nil
}
