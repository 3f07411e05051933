package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/fonts"
	"github.com/matzehuels/titlecard/pkg/style"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x40, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"templates/tng.png": {Data: encodePNG(t, 64, 36)},
		"fonts/regular.ttf": {Data: goregular.TTF},
		"fonts/broken.ttf":  {Data: []byte("not a font")},
		"templates/bad.png": {Data: []byte("not an image")},
	}
}

// countingFS counts opens per name.
type countingFS struct {
	fsys  fs.FS
	mu    sync.Mutex
	opens map[string]int
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.mu.Lock()
	c.opens[name]++
	c.mu.Unlock()
	return c.fsys.Open(name)
}

func (c *countingFS) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens[name]
}

func TestBackground(t *testing.T) {
	s := NewStore(testFS(t), nil)
	bg, err := s.Background("templates/tng.png")
	if err != nil {
		t.Fatalf("Background: %v", err)
	}
	if b := bg.Image.Bounds(); b.Dx() != 64 || b.Dy() != 36 {
		t.Errorf("bounds = %v, want 64x36", b)
	}
	if len(bg.Hash) != 64 {
		t.Errorf("Hash = %q", bg.Hash)
	}
}

func TestFont(t *testing.T) {
	s := NewStore(testFS(t), nil)

	f, err := s.Font("fonts/regular.ttf")
	if err != nil {
		t.Fatalf("Font: %v", err)
	}
	builtin, err := s.Font(fonts.Regular)
	if err != nil {
		t.Fatalf("Font(builtin): %v", err)
	}
	if f.Hash != builtin.Hash {
		t.Error("same font data should hash the same")
	}
}

func TestLoadErrors(t *testing.T) {
	s := NewStore(testFS(t), nil)

	tests := []struct {
		name string
		load func() error
		code errors.Code
	}{
		{"missing background", func() error { _, err := s.Background("templates/missing.png"); return err }, errors.ErrCodeResourceNotFound},
		{"missing font", func() error { _, err := s.Font("fonts/missing.ttf"); return err }, errors.ErrCodeResourceNotFound},
		{"unknown builtin", func() error { _, err := s.Font("builtin:papyrus"); return err }, errors.ErrCodeResourceNotFound},
		{"undecodable background", func() error { _, err := s.Background("templates/bad.png"); return err }, errors.ErrCodeInvalidAsset},
		{"unparsable font", func() error { _, err := s.Font("fonts/broken.ttf"); return err }, errors.ErrCodeInvalidAsset},
		{"escaping path", func() error { _, err := s.Background("../etc/passwd"); return err }, errors.ErrCodeConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.load()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
	if nf, nb := s.Len(); nf != 0 || nb != 0 {
		t.Errorf("failed loads must not be cached, got %d fonts %d backgrounds", nf, nb)
	}
}

func TestLoadsAtMostOnce(t *testing.T) {
	cfs := &countingFS{fsys: testFS(t), opens: make(map[string]int)}
	s := NewStore(cfs, nil)

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Background("templates/tng.png"); err != nil {
				failures.Add(1)
			}
			if _, err := s.Font("fonts/regular.ttf"); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Fatalf("%d loads failed", failures.Load())
	}
	if n := cfs.count("templates/tng.png"); n != 1 {
		t.Errorf("background opened %d times, want 1", n)
	}
	if n := cfs.count("fonts/regular.ttf"); n != 1 {
		t.Errorf("font opened %d times, want 1", n)
	}
}

func TestSharedInstances(t *testing.T) {
	s := NewStore(testFS(t), nil)
	a, _ := s.Background("templates/tng.png")
	b, _ := s.Background("templates/tng.png")
	if a != b {
		t.Error("repeated loads should return the cached background")
	}
}

func TestPreload(t *testing.T) {
	s := NewStore(testFS(t), nil)
	descs := []style.Descriptor{
		{Key: "A", Font: fonts.Regular, Background: "templates/tng.png"},
		{Key: "B", Font: "fonts/regular.ttf", Background: "templates/tng.png"},
	}
	if err := s.Preload(context.Background(), descs); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if nf, nb := s.Len(); nf != 2 || nb != 1 {
		t.Errorf("Len() = %d, %d, want 2, 1", nf, nb)
	}

	descs = append(descs, style.Descriptor{Key: "C", Font: fonts.Regular, Background: "templates/missing.png"})
	err := s.Preload(context.Background(), descs)
	if !errors.Is(err, errors.ErrCodeResourceNotFound) {
		t.Errorf("Preload with missing asset = %v", err)
	}
}
