// Package cli implements the titlecard command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/titlecard/pkg/assets"
	"github.com/matzehuels/titlecard/pkg/buildinfo"
	"github.com/matzehuels/titlecard/pkg/cache"
	"github.com/matzehuels/titlecard/pkg/pipeline"
	"github.com/matzehuels/titlecard/pkg/style"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "titlecard"

	// envStyles and envAssets provide defaults for --styles and --assets.
	envStyles = "TITLECARD_STYLES"
	envAssets = "TITLECARD_ASSETS"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stylesPath string // TOML style table; empty means the built-in table
	assetsDir  string // root that font and background paths resolve against
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Titlecard renders episode title cards in series styles",
		Long: `Titlecard renders a title onto a style's background image using the style's
font, colors, placement and text transform, and writes the card as PNG or JPEG.

Unknown style keys fall back to the default style.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	assetsDefault := os.Getenv(envAssets)
	if assetsDefault == "" {
		assetsDefault = "."
	}
	root.PersistentFlags().StringVar(&c.stylesPath, "styles", os.Getenv(envStyles), "style table (TOML); built-in table if empty [$"+envStyles+"]")
	root.PersistentFlags().StringVar(&c.assetsDir, "assets", assetsDefault, "directory holding fonts and backgrounds [$"+envAssets+"]")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadRegistry loads the style table named by --styles.
func (c *CLI) loadRegistry() (*style.Registry, error) {
	if c.stylesPath == "" {
		return style.Defaults(), nil
	}
	c.Logger.Debug("loading style table", "path", c.stylesPath)
	return style.Load(c.stylesPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return nil, err
	}
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return c.newRunnerWithCache(reg, cache, nil), nil
}

func (c *CLI) newRunnerWithCache(reg *style.Registry, cc cache.Cache, keyer cache.Keyer) *pipeline.Runner {
	store := assets.NewDirStore(c.assetsDir, c.Logger)
	return pipeline.NewRunner(reg, store, cc, keyer, c.Logger)
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/titlecard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
