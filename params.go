package urlkit

import (
	"slices"

	"github.com/ghettovoice/urlkit/internal/constraints"
)

// Value is a single query parameter value. It distinguishes a bare key
// ("?flag") from a key with an empty value ("?flag="). The zero Value is
// bare, build present values with [V].
type Value struct {
	str     string
	present bool
}

// V returns a present Value holding s.
func V[T constraints.Byteseq](s T) Value {
	return Value{str: string(s), present: true}
}

// Bare returns the bare Value. Equivalent to the zero value.
func Bare() Value {
	return Value{}
}

// IsBare reports whether the value is bare, i.e. its key serializes without
// a trailing "=".
func (v Value) IsBare() bool {
	return !v.present
}

// Get returns the held string and whether the value is present.
// A bare value yields ("", false).
func (v Value) Get() (string, bool) {
	return v.str, v.present
}

// String returns the held string. A bare value yields "".
func (v Value) String() string {
	return v.str
}

// Item is a single key/value query pair.
type Item struct {
	Key   string
	Value Value
}

// Pair returns an Item with a present value.
func Pair(key, value string) Item {
	return Item{Key: key, Value: V(value)}
}

// BareKey returns an Item with a bare value.
func BareKey(key string) Item {
	return Item{Key: key}
}

// Params is an ordered one-dimensional multivalue mapping of decoded query
// parameter keys to values. Insertion order is preserved across all
// mutations, repeated keys keep their original positions.
//
// Params is not safe for concurrent mutation.
type Params struct {
	items []Item
}

// Len returns the total number of key/value pairs.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// Items returns a copy of all key/value pairs in order.
func (p *Params) Items() []Item {
	if p == nil {
		return nil
	}
	return slices.Clone(p.items)
}

// Keys returns the distinct keys in first-occurrence order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.items))
	seen := make(map[string]struct{}, len(p.items))
	for _, it := range p.items {
		if _, ok := seen[it.Key]; ok {
			continue
		}
		seen[it.Key] = struct{}{}
		keys = append(keys, it.Key)
	}
	return keys
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.GetValue(key)
	return ok
}

// Get returns the first value string for key. A bare value yields "".
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.GetValue(key)
	return v.String(), ok
}

// GetValue returns the first value for key.
func (p *Params) GetValue(key string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	for _, it := range p.items {
		if it.Key == key {
			return it.Value, true
		}
	}
	return Value{}, false
}

// GetAll returns all values for key in order.
func (p *Params) GetAll(key string) []Value {
	if p == nil {
		return nil
	}
	var vals []Value
	for _, it := range p.items {
		if it.Key == key {
			vals = append(vals, it.Value)
		}
	}
	return vals
}

func (p *Params) count(key string) int {
	n := 0
	for _, it := range p.items {
		if it.Key == key {
			n++
		}
	}
	return n
}

// Add appends the given values for key at the end of the mapping.
func (p *Params) Add(key string, vals ...Value) *Params {
	for _, v := range vals {
		p.items = append(p.items, Item{Key: key, Value: v})
	}
	return p
}

// Set replaces all values of key with the given values. Existing pairs keep
// their positions, surplus new values are appended at the end of the
// mapping, surplus old pairs are dropped. An absent key is appended at the
// end.
func (p *Params) Set(key string, vals ...Value) *Params {
	if len(vals) == 0 {
		p.Del(key)
		return p
	}

	next := 0
	out := make([]Item, 0, len(p.items)+len(vals))
	for _, it := range p.items {
		if it.Key != key {
			out = append(out, it)
			continue
		}
		if next < len(vals) {
			out = append(out, Item{Key: key, Value: vals[next]})
			next++
		}
	}
	for _, v := range vals[next:] {
		out = append(out, Item{Key: key, Value: v})
	}
	p.items = out
	return p
}

// Del removes all pairs with the given key and reports whether any existed.
func (p *Params) Del(key string) bool {
	if p == nil {
		return false
	}
	n := len(p.items)
	p.items = slices.DeleteFunc(p.items, func(it Item) bool { return it.Key == key })
	return len(p.items) < n
}

// PopValue removes the first pair matching both key and value and reports
// whether one existed.
func (p *Params) PopValue(key string, val Value) bool {
	if p == nil {
		return false
	}
	for i, it := range p.items {
		if it.Key == key && it.Value == val {
			p.items = slices.Delete(p.items, i, i+1)
			return true
		}
	}
	return false
}

// Clear removes all pairs.
func (p *Params) Clear() *Params {
	p.items = nil
	return p
}

// Clone returns a deep copy of the mapping.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	return &Params{items: slices.Clone(p.items)}
}

// Equal compares this mapping with another for equality by ordered pairs.
func (p *Params) Equal(val any) bool {
	var other *Params
	switch v := val.(type) {
	case Params:
		other = &v
	case *Params:
		other = v
	default:
		return false
	}

	if p == other {
		return true
	} else if p == nil || other == nil {
		return false
	}
	return slices.Equal(p.items, other.items)
}

// updateAll adopts all pairs of items. Values of existing keys are replaced
// in place, pairs that do not fit into existing positions are appended at
// the end in input order.
func (p *Params) updateAll(items []Item) {
	replacements := make(map[string][]Value)
	var leftovers []Item
	for _, it := range items {
		if p.Has(it.Key) && len(replacements[it.Key]) < p.count(it.Key) {
			replacements[it.Key] = append(replacements[it.Key], it.Value)
		} else {
			leftovers = append(leftovers, it)
		}
	}
	for key, vals := range replacements {
		p.Set(key, vals...)
	}
	p.items = append(p.items, leftovers...)
}

// load replaces the whole mapping with the given pairs.
func (p *Params) load(items []Item) {
	p.items = items
}
