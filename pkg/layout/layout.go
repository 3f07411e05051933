// Package layout turns a title into the wrapped lines and font size of a card.
//
// Layout is pure: it works on character counts only and needs neither fonts
// nor images. Pixel geometry is the renderer's concern.
//
//	text := layout.Prepare("The Cage", reg.Resolve("TOS"))
//	// text.Lines == []string{`"THE CAGE"`}, text.FontSize == 75
package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/titlecard/pkg/style"
)

// Text is the laid-out title of one card.
type Text struct {
	Display  string   // transformed title
	Lines    []string // wrapped display text, never empty
	FontSize int      // shrink-adjusted size in points
}

// Prepare applies the descriptor's transform, shrink steps and wrap width.
func Prepare(title string, d style.Descriptor) Text {
	display := ApplyTransform(title, d.Transform)
	return Text{
		Display:  display,
		Lines:    Wrap(display, d.Wrap),
		FontSize: FontSize(display, d.Size, d.Shrink),
	}
}

// ApplyTransform quotes and then upper-cases title as configured.
func ApplyTransform(title string, t style.Transform) string {
	s := title
	if t.Quote {
		s = `"` + s + `"`
	}
	if t.Uppercase {
		s = strings.ToUpper(s)
	}
	return s
}

// FontSize scales base by the last shrink step whose threshold the text
// length exceeds. Steps are ordered by increasing threshold with decreasing
// scale, so the result never grows as the text gets longer. The result is
// floored and at least 1.
func FontSize(text string, base int, steps []style.ShrinkStep) int {
	n := utf8.RuneCountInString(text)
	scale := 1.0
	for _, s := range steps {
		if n > s.Over {
			scale = s.Scale
		}
	}
	size := int(math.Floor(float64(base) * scale))
	return max(1, size)
}

// Wrap greedily packs the words of text into lines of at most width runes.
// Lines break only between words; a word longer than width is placed alone on
// its own line. Text without any words yields a single line holding text
// unchanged.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}
	width = max(1, width)

	var lines []string
	current := words[0]
	currentLen := utf8.RuneCountInString(current)
	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+1+wordLen <= width {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}
		lines = append(lines, current)
		current, currentLen = word, wordLen
	}
	return append(lines, current)
}
