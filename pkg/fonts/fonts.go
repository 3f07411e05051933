// Package fonts provides the built-in fonts addressable from a style table.
//
// A style's font reference is normally a path under the asset root. The
// "builtin:" scheme instead selects one of the Go fonts compiled into the
// binary, which keeps the default style usable on a machine without any
// font assets and gives tests a real TrueType face.
package fonts

import (
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Scheme is the reference prefix for built-in fonts.
const Scheme = "builtin:"

// Built-in font references.
const (
	Regular = Scheme + "goregular"
	Bold    = Scheme + "gobold"
	Mono    = Scheme + "gomono"
)

var builtins = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// IsBuiltin reports whether ref uses the builtin: scheme.
func IsBuiltin(ref string) bool {
	return strings.HasPrefix(ref, Scheme)
}

// Lookup returns the TTF data of a built-in font reference.
func Lookup(ref string) ([]byte, bool) {
	if !IsBuiltin(ref) {
		return nil, false
	}
	data, ok := builtins[strings.TrimPrefix(ref, Scheme)]
	return data, ok
}

// Names returns the available built-in references, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, Scheme+name)
	}
	sort.Strings(names)
	return names
}
