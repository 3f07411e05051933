// Package assets loads the fonts and background templates referenced by
// styles.
//
// A [Store] reads assets from an [fs.FS], normally the directory given by
// --assets. Every asset is decoded at most once per store: concurrent first
// requests for the same reference share one load, and later requests return
// the cached value. Loaded assets are read-only and safe to share between
// renders.
//
// Font references with the "builtin:" scheme resolve to the fonts compiled
// into the binary (see package fonts) and never touch the filesystem.
package assets

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/titlecard/pkg/cache"
	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/fonts"
	"github.com/matzehuels/titlecard/pkg/style"
)

// Font is a parsed TrueType font. The font itself is safe for concurrent use;
// faces created from it are not.
type Font struct {
	*truetype.Font
	Ref  string
	Hash string // SHA-256 of the font file
}

// Background is a decoded background template.
type Background struct {
	Image image.Image
	Ref   string
	Hash  string // SHA-256 of the encoded file
}

// Store caches decoded assets by reference.
type Store struct {
	fsys   fs.FS
	logger *log.Logger

	mu          sync.RWMutex
	fonts       map[string]*Font
	backgrounds map[string]*Background
	group       singleflight.Group
}

// NewStore creates a store reading from fsys. A nil logger discards output.
func NewStore(fsys fs.FS, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Store{
		fsys:        fsys,
		logger:      logger,
		fonts:       make(map[string]*Font),
		backgrounds: make(map[string]*Background),
	}
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string, logger *log.Logger) *Store {
	return NewStore(os.DirFS(dir), logger)
}

// Font returns the parsed font for ref.
func (s *Store) Font(ref string) (*Font, error) {
	s.mu.RLock()
	f, ok := s.fonts[ref]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	v, err, _ := s.group.Do("font:"+ref, func() (any, error) {
		s.mu.RLock()
		f, ok := s.fonts[ref]
		s.mu.RUnlock()
		if ok {
			return f, nil
		}

		f, err := s.loadFont(ref)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.fonts[ref] = f
		s.mu.Unlock()
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Font), nil
}

// Background returns the decoded background image for ref.
func (s *Store) Background(ref string) (*Background, error) {
	s.mu.RLock()
	bg, ok := s.backgrounds[ref]
	s.mu.RUnlock()
	if ok {
		return bg, nil
	}

	v, err, _ := s.group.Do("background:"+ref, func() (any, error) {
		s.mu.RLock()
		bg, ok := s.backgrounds[ref]
		s.mu.RUnlock()
		if ok {
			return bg, nil
		}

		bg, err := s.loadBackground(ref)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.backgrounds[ref] = bg
		s.mu.Unlock()
		return bg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Background), nil
}

// Preload loads the font and background of every descriptor concurrently.
// It returns the first failure.
func (s *Store) Preload(ctx context.Context, descs []style.Descriptor) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, d := range descs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := s.Font(d.Font); err != nil {
				return err
			}
			_, err := s.Background(d.Background)
			return err
		})
	}
	return g.Wait()
}

// Len reports how many fonts and backgrounds are cached.
func (s *Store) Len() (fontCount, backgroundCount int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fonts), len(s.backgrounds)
}

func (s *Store) loadFont(ref string) (*Font, error) {
	data, ok := fonts.Lookup(ref)
	if !ok {
		if fonts.IsBuiltin(ref) {
			return nil, errors.New(errors.ErrCodeResourceNotFound, "unknown builtin font %q", ref)
		}
		var err error
		if data, err = s.read(ref); err != nil {
			return nil, err
		}
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "parse font %s", ref)
	}
	s.logger.Debug("loaded font", "ref", ref, "bytes", len(data))
	return &Font{Font: f, Ref: ref, Hash: cache.Hash(data)}, nil
}

func (s *Store) loadBackground(ref string) (*Background, error) {
	data, err := s.read(ref)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "decode background %s", ref)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidAsset, "background %s has no pixels", ref)
	}
	s.logger.Debug("loaded background", "ref", ref, "width", b.Dx(), "height", b.Dy())
	return &Background{Image: img, Ref: ref, Hash: cache.Hash(data)}, nil
}

func (s *Store) read(ref string) ([]byte, error) {
	if err := errors.ValidateAssetRef(ref); err != nil {
		return nil, err
	}
	if !fs.ValidPath(ref) {
		return nil, errors.New(errors.ErrCodeConfiguration, "invalid asset path %q", ref)
	}
	data, err := fs.ReadFile(s.fsys, ref)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeResourceNotFound, err, "asset %s not found", ref)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAsset, err, "read asset %s", ref)
	}
	return data, nil
}
