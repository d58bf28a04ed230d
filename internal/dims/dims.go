// Package dims provides named, ordered index spaces used to size array axes.
// A dimension is declared either as an explicit key list or as an inclusive
// numeric range.
package dims

import (
	"fmt"
	"strconv"
)

// Dimension is a named, ordered index space. Keys are unique and their
// declared order is the storage order.
type Dimension struct {
	name  string
	keys  []string
	index map[string]int
}

// New constructs a dimension from an explicit key list.
func New(name string, keys []string) (*Dimension, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("dimension %q: no keys", name)
	}
	d := &Dimension{
		name:  name,
		keys:  make([]string, len(keys)),
		index: make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		if _, dup := d.index[k]; dup {
			return nil, fmt.Errorf("dimension %q: duplicate key %q", name, k)
		}
		d.keys[i] = k
		d.index[k] = i
	}
	return d, nil
}

// NewRange constructs a dimension whose keys are the integers first..last
// inclusive.
func NewRange(name string, first, last int) (*Dimension, error) {
	if last < first {
		return nil, fmt.Errorf("dimension %q: range %d..%d is empty", name, first, last)
	}
	keys := make([]string, 0, last-first+1)
	for v := first; v <= last; v++ {
		keys = append(keys, strconv.Itoa(v))
	}
	return New(name, keys)
}

// Name returns the dimension's name.
func (d *Dimension) Name() string { return d.name }

// Len returns the number of keys.
func (d *Dimension) Len() int { return len(d.keys) }

// Key returns the key at position i.
func (d *Dimension) Key(i int) string { return d.keys[i] }

// Index returns the position of a key.
func (d *Dimension) Index(key string) (int, bool) {
	i, ok := d.index[key]
	return i, ok
}

// Keys returns a copy of the ordered key list.
func (d *Dimension) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}
