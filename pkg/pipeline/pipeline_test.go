package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/titlecard/pkg/assets"
	"github.com/matzehuels/titlecard/pkg/cache"
	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/fonts"
	"github.com/matzehuels/titlecard/pkg/observability"
	"github.com/matzehuels/titlecard/pkg/style"
)

func backgroundPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.RGBA{R: 0x10, G: 0x18, B: 0x30, A: 0xff})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// testRunner serves the default styles from an in-memory asset root, with
// every style's font swapped for an embedded one.
func testRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	bg := backgroundPNG(t, 480, 270)
	fsys := fstest.MapFS{}
	var descs []style.Descriptor
	for _, d := range style.Defaults().Descriptors() {
		d.Font = fonts.Bold
		fsys[d.Background] = &fstest.MapFile{Data: bg}
		descs = append(descs, d)
	}
	reg, err := style.NewRegistry(descs, style.Defaults().DefaultKey())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(reg, assets.NewStore(fsys, nil), c, nil, nil)
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Style: " tos ", Title: "The Cage"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Format != "png" || opts.Style != "tos" || opts.Logger == nil {
		t.Errorf("opts = %+v", opts)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty title", Options{Style: "TNG"}, errors.ErrCodeInvalidTitle},
		{"control characters", Options{Title: "a\nb"}, errors.ErrCodeInvalidTitle},
		{"title too long", Options{Title: strings.Repeat("a", errors.MaxTitleLength+1)}, errors.ErrCodeInvalidTitle},
		{"bad format", Options{Title: "a", Format: "gif"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := testRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Style: "TOS", Title: "The Cage"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Descriptor.Key != "TOS" || res.Fallback {
		t.Errorf("resolved %s (fallback %v), want TOS", res.Descriptor.Key, res.Fallback)
	}
	if len(res.Lines) != 1 || res.Lines[0] != `"THE CAGE"` {
		t.Errorf("Lines = %q", res.Lines)
	}
	if res.FontSize != res.Descriptor.Size {
		t.Errorf("FontSize = %d, want %d", res.FontSize, res.Descriptor.Size)
	}

	card := res.Card
	if card.AltText != "TOS style title card for The Cage" {
		t.Errorf("AltText = %q", card.AltText)
	}
	img, err := imaging.Decode(bytes.NewReader(card.Data))
	if err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 480, 270) || card.Width != 480 || card.Height != 270 {
		t.Errorf("card is %v (%dx%d), want the background's 480x270", img.Bounds(), card.Width, card.Height)
	}
}

func TestExecuteUnknownStyleFallsBack(t *testing.T) {
	r := testRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Style: "XYZ", Title: "Test"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Descriptor.Key != "TNG" || !res.Fallback {
		t.Errorf("resolved %s (fallback %v), want TNG fallback", res.Descriptor.Key, res.Fallback)
	}
	if res.Card.AltText != "XYZ style title card for Test" {
		t.Errorf("AltText = %q", res.Card.AltText)
	}
	if len(res.Card.Data) == 0 {
		t.Error("no image data")
	}
}

func TestExecuteUnusualStyleKeysFallBack(t *testing.T) {
	r := testRunner(t, nil)
	keys := []string{"Star Trek", "T.O.S", "ENT!", "../TNG", strings.Repeat("X", 36)}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			res, err := r.Execute(context.Background(), Options{Style: key, Title: "Test"})
			if err != nil {
				t.Fatalf("Execute(%q): %v", key, err)
			}
			if res.Descriptor.Key != "TNG" || !res.Fallback {
				t.Errorf("resolved %s (fallback %v), want TNG fallback", res.Descriptor.Key, res.Fallback)
			}
			if want := key + " style title card for Test"; res.Card.AltText != want {
				t.Errorf("alt text = %q, want %q", res.Card.AltText, want)
			}
		})
	}
}

func TestExecuteEmptyStyleUsesDefault(t *testing.T) {
	r := testRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{Title: "Test"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Card.Style != "TNG" || res.Card.AltText != "TNG style title card for Test" {
		t.Errorf("card = %s / %q", res.Card.Style, res.Card.AltText)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	r := testRunner(t, nil)
	for _, key := range []string{"TOS", "DS9", "TNG", "VOY", "LDS"} {
		a, err := r.Execute(context.Background(), Options{Style: key, Title: "The Measure of a Man"})
		if err != nil {
			t.Fatal(err)
		}
		b, err := r.Execute(context.Background(), Options{Style: key, Title: "The Measure of a Man"})
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a.Card.Data, b.Card.Data) {
			t.Errorf("%s: output differs between runs", key)
		}
	}
}

func TestExecuteMissingAsset(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	d := style.Defaults().Resolve("TNG")
	d.Font = fonts.Regular
	d.Background = "templates/missing.png"
	reg, err := style.NewRegistry([]style.Descriptor{d}, "TNG")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(reg, assets.NewStore(fstest.MapFS{}, nil), c, nil, nil)

	res, err := r.Execute(context.Background(), Options{Style: "TNG", Title: "Test"})
	if !errors.Is(err, errors.ErrCodeResourceNotFound) {
		t.Fatalf("err = %v, want RESOURCE_NOT_FOUND", err)
	}
	if res != nil {
		t.Error("failed run must not return a result")
	}
	if n, _ := c.Clear(); n != 0 {
		t.Errorf("failed run cached %d entries", n)
	}
}

func TestExecuteCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, c)
	ctx := context.Background()
	opts := Options{Style: "VOY", Title: "Timeless"}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit || second.Stats.RenderTime != 0 {
		t.Errorf("second run: hit=%v render=%v, want a cache hit", second.CacheHit, second.Stats.RenderTime)
	}
	if !bytes.Equal(first.Card.Data, second.Card.Data) {
		t.Error("cached bytes differ from rendered bytes")
	}
	if second.Card.AltText != first.Card.AltText || second.Card.Width != first.Card.Width {
		t.Error("cached card metadata differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	// A different format is a different card.
	jpeg, err := r.Execute(ctx, Options{Style: "VOY", Title: "Timeless", Format: "jpeg"})
	if err != nil {
		t.Fatal(err)
	}
	if jpeg.CacheHit {
		t.Error("jpeg request should not hit the png entry")
	}
}

func TestExecuteCanceled(t *testing.T) {
	r := testRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Execute(ctx, Options{Title: "Test"}); err == nil {
		t.Error("Execute with canceled context should fail")
	}
}

func TestExecuteBatch(t *testing.T) {
	r := testRunner(t, nil)
	reqs := []Options{
		{Style: "TOS", Title: "The Cage"},
		{Style: "DS9", Title: "Duet"},
		{Style: "TNG", Title: "Darmok"},
		{Style: "VOY", Title: "Timeless"},
		{Style: "LDS", Title: "Strange Energies"},
		{Style: "XYZ", Title: "Test"},
	}
	results, err := r.ExecuteBatch(context.Background(), reqs, 3)
	if err != nil {
		t.Fatalf("ExecuteBatch: %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for i, res := range results {
		if res.Card.Title != reqs[i].Title {
			t.Errorf("result %d is %q, want %q", i, res.Card.Title, reqs[i].Title)
		}
		if len(res.Card.Data) == 0 {
			t.Errorf("result %d has no data", i)
		}
	}
	if results[5].Descriptor.Key != "TNG" {
		t.Errorf("unknown style resolved to %s", results[5].Descriptor.Key)
	}
}

func TestExecuteBatchFailure(t *testing.T) {
	r := testRunner(t, nil)
	reqs := []Options{
		{Style: "TOS", Title: "The Cage"},
		{Style: "TNG", Title: ""},
	}
	_, err := r.ExecuteBatch(context.Background(), reqs, 0)
	if !errors.Is(err, errors.ErrCodeInvalidTitle) {
		t.Errorf("ExecuteBatch = %v, want INVALID_TITLE", err)
	}
}

func TestPreload(t *testing.T) {
	r := testRunner(t, nil)
	if err := r.Preload(context.Background()); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	if nf, _ := r.Assets.Len(); nf != 1 {
		t.Errorf("Preload cached %d fonts, want 1", nf)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu       sync.Mutex
	started  []string
	finished []error
}

func (h *recordingHooks) OnRenderStart(_ context.Context, style, format string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, style+"/"+format)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished = append(h.finished, err)
}

func TestExecuteFiresHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := testRunner(t, nil)
	if _, err := r.Execute(context.Background(), Options{Style: "DS9", Title: "Duet", Format: "jpg"}); err != nil {
		t.Fatal(err)
	}
	if len(hooks.started) != 1 || hooks.started[0] != "DS9/jpeg" {
		t.Errorf("started = %v", hooks.started)
	}
	if len(hooks.finished) != 1 || hooks.finished[0] != nil {
		t.Errorf("finished = %v", hooks.finished)
	}
}
