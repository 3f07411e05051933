package style

import (
	"strings"

	"github.com/matzehuels/titlecard/pkg/errors"
)

// Registry maps style keys to descriptors. It is immutable after construction
// and safe for concurrent use.
type Registry struct {
	styles     map[string]Descriptor
	order      []string
	defaultKey string
}

// NewRegistry validates descs and builds a registry. defaultKey must name one
// of the descriptors; it is returned for every unknown key.
func NewRegistry(descs []Descriptor, defaultKey string) (*Registry, error) {
	if len(descs) == 0 {
		return nil, errors.New(errors.ErrCodeConfiguration, "style table is empty")
	}

	r := &Registry{
		styles:     make(map[string]Descriptor, len(descs)),
		order:      make([]string, 0, len(descs)),
		defaultKey: normalizeKey(defaultKey),
	}
	for _, d := range descs {
		d.Key = normalizeKey(d.Key)
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.styles[d.Key]; dup {
			return nil, errors.New(errors.ErrCodeConfiguration, "duplicate style key %q", d.Key)
		}
		d.Shrink = append([]ShrinkStep(nil), d.Shrink...)
		r.styles[d.Key] = d
		r.order = append(r.order, d.Key)
	}

	if _, ok := r.styles[r.defaultKey]; !ok {
		return nil, errors.New(errors.ErrCodeConfiguration, "default style %q is not defined", defaultKey)
	}
	return r, nil
}

// Resolve returns the descriptor for key, or the default descriptor when the
// key is empty or unknown. It never fails.
func (r *Registry) Resolve(key string) Descriptor {
	if d, ok := r.Lookup(key); ok {
		return d
	}
	return r.Default()
}

// Lookup returns the descriptor registered under key.
func (r *Registry) Lookup(key string) (Descriptor, bool) {
	d, ok := r.styles[normalizeKey(key)]
	if ok {
		d.Shrink = append([]ShrinkStep(nil), d.Shrink...)
	}
	return d, ok
}

// Default returns the fallback descriptor.
func (r *Registry) Default() Descriptor {
	d, _ := r.Lookup(r.defaultKey)
	return d
}

// DefaultKey returns the key of the fallback descriptor.
func (r *Registry) DefaultKey() string { return r.defaultKey }

// Keys returns the registered keys in configuration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

// Descriptors returns all descriptors in configuration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, k := range r.order {
		d, _ := r.Lookup(k)
		out = append(out, d)
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
