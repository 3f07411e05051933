// Package publish hands rendered cards to whatever delivers them.
//
// The rendering core never posts anything itself. Callers pass a [Publisher]
// value explicitly; [DirPublisher] is the one shipped here and writes cards to
// a local directory. Network publishers (upload, reply threading, auth) live
// outside this module and only need to implement the interface.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/matzehuels/titlecard/pkg/errors"
)

// Card is a rendered, encoded title card ready for delivery.
type Card struct {
	Style   string // resolved style key
	Title   string // title as requested, before any transform
	AltText string
	Format  string // "png" or "jpeg"
	Data    []byte
	Width   int
	Height  int
}

// AltText returns the accessibility text for a card, naming the requested
// style key and the original title.
func AltText(styleKey, title string) string {
	return fmt.Sprintf("%s style title card for %s", styleKey, title)
}

// Publisher delivers a card and returns where it went (a path, URL or ID).
type Publisher interface {
	Publish(ctx context.Context, card Card) (string, error)
}

// DirPublisher writes each card to Dir as <style>-<slug>.<ext>, with the alt
// text in a .txt file next to it. When two cards published through the same
// DirPublisher share a name, later ones get a -2, -3, ... suffix. Files left
// by earlier runs are overwritten.
type DirPublisher struct {
	Dir string

	mu    sync.Mutex
	taken map[string]bool
}

// NewDirPublisher creates the output directory if needed.
func NewDirPublisher(dir string) (*DirPublisher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}
	return &DirPublisher{Dir: dir}, nil
}

// Publish writes the image and its alt-text sidecar and returns the image
// path.
func (p *DirPublisher) Publish(ctx context.Context, card Card) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(card.Data) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "card %q has no image data", card.Title)
	}

	base := p.claim(FileName(card.Style, card.Title))
	path := filepath.Join(p.Dir, base+"."+extension(card.Format))
	if err := os.WriteFile(path, card.Data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	alt := filepath.Join(p.Dir, base+".txt")
	if err := os.WriteFile(alt, []byte(card.AltText+"\n"), 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", alt)
	}
	return path, nil
}

// claim reserves a unique base name for this publisher.
func (p *DirPublisher) claim(base string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.taken == nil {
		p.taken = make(map[string]bool)
	}
	name := base
	for n := 2; p.taken[name]; n++ {
		name = fmt.Sprintf("%s-%d", base, n)
	}
	p.taken[name] = true
	return name
}

// FileName returns the extension-less file name for a card: the lower-cased
// style key and a slug of the title.
func FileName(styleKey, title string) string {
	return strings.ToLower(styleKey) + "-" + Slug(title)
}

// Slug lower-cases s and joins its letters and digits with hyphens.
// A title without any letters or digits becomes "untitled".
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}

func extension(format string) string {
	if format == "jpeg" || format == "jpg" {
		return "jpg"
	}
	return "png"
}

var _ Publisher = (*DirPublisher)(nil)
