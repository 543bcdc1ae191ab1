package chronatrix

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/coality/chronatrix/pkg/chronatrix/value"
)

// Context is the immutable key→value snapshot describing "now, here".
// It preserves build order for rendering, resolves names for the
// expression evaluator, and compares by contents alone.
type Context struct {
	keys   []string
	values map[string]value.Value
}

// newContext returns an empty context for the builder to populate.
func newContext() *Context {
	return &Context{values: make(map[string]value.Value)}
}

// set adds a computed key. Two build stages defining the same key is a
// builder defect, not a runtime case, so it panics.
func (c *Context) set(key string, v value.Value) {
	if _, exists := c.values[key]; exists {
		panic("chronatrix: duplicate computed context key: " + key)
	}
	c.keys = append(c.keys, key)
	c.values[key] = v
}

// Get returns the value bound to key. It has no side effects.
func (c *Context) Get(key string) (value.Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Resolve implements expr.Resolver.
func (c *Context) Resolve(name string) (value.Value, bool) {
	return c.Get(name)
}

// Keys returns the keys in build order. The slice is a copy.
func (c *Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of keys.
func (c *Context) Len() int { return len(c.keys) }

// WithOverrides returns a new Context where entries in overrides
// replace same-named entries; new keys are appended in iteration-stable
// (sorted) order. String values are lowercased so condition authors can
// compare case-insensitively. The receiver is never mutated.
func (c *Context) WithOverrides(overrides map[string]value.Value) *Context {
	next := &Context{
		keys:   make([]string, len(c.keys), len(c.keys)+len(overrides)),
		values: make(map[string]value.Value, len(c.values)+len(overrides)),
	}
	copy(next.keys, c.keys)
	for k, v := range c.values {
		next.values[k] = v
	}

	added := make([]string, 0, len(overrides))
	for k, v := range overrides {
		if v.Kind() == value.KindString {
			v = value.String(strings.ToLower(v.Str()))
		}
		if _, exists := next.values[k]; !exists {
			added = append(added, k)
		}
		next.values[k] = v
	}
	sort.Strings(added)
	next.keys = append(next.keys, added...)
	return next
}

// Equal reports whether two contexts hold the same key→value mapping,
// regardless of internal ordering.
func (c *Context) Equal(other *Context) bool {
	if other == nil || len(c.values) != len(other.values) {
		return false
	}
	for k, v := range c.values {
		ov, ok := other.values[k]
		if !ok || !value.Equal(v, ov) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the context with keys sorted and temporal values
// in ISO 8601.
func (c *Context) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.values))
	for k, v := range c.values {
		m[k] = v.Native()
	}
	return json.Marshal(m)
}

// Render returns an indented JSON snapshot for display and debugging.
func (c *Context) Render() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
