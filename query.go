package urlkit

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlkit/internal/grammar"
	"github.com/ghettovoice/urlkit/internal/ioutil"
	"github.com/ghettovoice/urlkit/internal/util"
)

// Query represents a URL query as an ordered one-dimensional multivalue
// mapping of decoded parameter keys to values.
type Query struct {
	params Params
	strict bool
	diags  *diagnostics
}

// NewQuery returns a query loaded from the given source.
func NewQuery(src QuerySource, opts ...Option) *Query {
	cfg := newConfig(opts...)
	q := &Query{strict: cfg.strict, diags: cfg.diags()}
	q.Load(src)
	return q
}

// QuerySource is a source of query parameters accepted by [Query.Load],
// [Query.Add] and [Query.Set]: an encoded query string, a list of items or
// a map. Implementations are [QueryString], [QueryItems], [QueryMap] and
// [QueryMultiMap].
type QuerySource interface {
	queryItems(q *Query) queryInput
}

type queryInput struct {
	items []Item
	// dels lists keys mapped to an empty value slice, which deletes the key
	// on Set.
	dels []string
}

// QueryString is an encoded query string source, e.g. "a=1&b=%23&flag".
// Keys and values are decoded on intake, "+" decodes to a space.
type QueryString string

func (s QueryString) queryItems(q *Query) queryInput {
	return queryInput{items: q.parseEncoded(string(s))}
}

// QueryItems is an ordered list source of decoded key/value items.
type QueryItems []Item

func (items QueryItems) queryItems(*Query) queryInput {
	return queryInput{items: slices.Clone(items)}
}

// QueryMap is a single-valued map source of decoded parameters.
// Keys are adopted in sorted order for determinism.
type QueryMap map[string]string

func (m QueryMap) queryItems(*Query) queryInput {
	items := make([]Item, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		items = append(items, Pair(key, m[key]))
	}
	return queryInput{items: items}
}

// QueryMultiMap is a multivalue map source of decoded parameters. A key
// mapped to N values yields N separate items. A key mapped to no values
// deletes the key on [Query.Set] and is ignored on Load and Add.
// Keys are adopted in sorted order for determinism.
type QueryMultiMap map[string][]string

func (m QueryMultiMap) queryItems(*Query) queryInput {
	var in queryInput
	for _, key := range slices.Sorted(maps.Keys(m)) {
		vals := m[key]
		if len(vals) == 0 {
			in.dels = append(in.dels, key)
			continue
		}
		for _, v := range vals {
			in.items = append(in.items, Pair(key, v))
		}
	}
	return in
}

// Params returns the underlying parameter mapping for direct access.
func (q *Query) Params() *Params {
	if q == nil {
		return nil
	}
	return &q.params
}

// Load replaces all parameters with the ones from src.
func (q *Query) Load(src QuerySource) *Query {
	in := q.items(src)
	q.params.load(in.items)
	return q
}

// Add appends all parameters from src at the end of the mapping.
func (q *Query) Add(src QuerySource) *Query {
	in := q.items(src)
	for _, it := range in.items {
		q.params.Add(it.Key, it.Value)
	}
	return q
}

// Set adopts all parameters from src, replacing the values of existing keys
// in place. If a key has multiple values in src, they are all adopted.
// Parameters that do not fit into existing positions are appended at the end.
func (q *Query) Set(src QuerySource) *Query {
	in := q.items(src)
	for _, key := range in.dels {
		q.params.Del(key)
	}
	q.params.updateAll(in.items)
	return q
}

// Remove removes all pairs with the given keys.
func (q *Query) Remove(keys ...string) *Query {
	for _, key := range keys {
		q.params.Del(key)
	}
	return q
}

// RemoveItems removes the first pair matching each given key/value item.
func (q *Query) RemoveItems(items ...Item) *Query {
	for _, it := range items {
		q.params.PopValue(it.Key, it.Value)
	}
	return q
}

// Clear removes all parameters.
func (q *Query) Clear() *Query {
	q.params.Clear()
	return q
}

// IsEmpty reports whether the query has no parameters.
func (q *Query) IsEmpty() bool {
	return q.params.Len() == 0
}

// RenderTo writes the encoded query string to the provided writer.
func (q *Query) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if q == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	delim := opts.queryDelim()
	for i, it := range q.params.items {
		if i > 0 {
			cw.WriteString(delim) //nolint:errcheck
		}
		cw.WriteString(encodeQueryKey(it.Key, opts)) //nolint:errcheck
		if s, ok := it.Value.Get(); ok {
			cw.WriteByte('=')                           //nolint:errcheck
			cw.WriteString(encodeQueryValue(s, opts)) //nolint:errcheck
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the encoded query string, e.g. "a=1&b=%23&flag".
// A bare value serializes as its key alone, without "=".
func (q *Query) Render(opts *RenderOptions) string {
	if q == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	q.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// Encode returns the encoded query string using the given delimiter.
func (q *Query) Encode(delim string) string {
	return q.Render(&RenderOptions{QueryDelim: delim})
}

// String returns the encoded query string.
func (q *Query) String() string {
	if q == nil {
		return ""
	}
	return q.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the query.
func (q *Query) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, q.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(q.String()))
	default:
		type hideMethods Query
		type Query hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Query)(q))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (q *Query) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (q *Query) UnmarshalText(text []byte) error {
	q.Load(QueryString(text))
	return nil
}

// Clone returns a deep copy of the query.
func (q *Query) Clone() *Query {
	if q == nil {
		return nil
	}
	q2 := *q
	q2.params = *q.params.Clone()
	return &q2
}

// Equal compares this query with another for equality by ordered parameters.
func (q *Query) Equal(val any) bool {
	var other *Query
	switch v := val.(type) {
	case Query:
		other = &v
	case *Query:
		other = v
	default:
		return false
	}

	if q == other {
		return true
	} else if q == nil || other == nil {
		return false
	}
	return q.params.Equal(&other.params)
}

func (q *Query) items(src QuerySource) queryInput {
	if src == nil {
		return queryInput{}
	}
	return src.queryItems(q)
}

// parseEncoded splits an encoded query string into decoded items. A pair
// without "=" yields a bare value, a pair with a trailing "=" yields an
// empty present value.
func (q *Query) parseEncoded(s string) []Item {
	if s == "" {
		return nil
	}

	pairs := strings.Split(s, "&")
	if q.strict {
		for _, pair := range pairs {
			key, val, _ := strings.Cut(pair, "=")
			if !grammar.IsEncodedQueryKey(key) || !grammar.IsEncodedQueryValue(val) {
				q.diags.warnf(WarnEncoding,
					"improperly encoded query string received: %q, proceeding, but did you mean %q?",
					s, reencodeQueryString(pairs))
				break
			}
		}
	}

	var items []Item
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, val, ok := strings.Cut(pair, "=")
		it := Item{Key: grammar.UnescapePlus(key)}
		if ok {
			it.Value = V(grammar.UnescapePlus(val))
		}
		items = append(items, it)
	}
	return items
}

func encodeQueryKey(key string, opts *RenderOptions) string {
	return encodeQueryPart(key, opts, grammar.IsQueryKeyCharSafe)
}

func encodeQueryValue(val string, opts *RenderOptions) string {
	return encodeQueryPart(val, opts, grammar.IsQueryValueCharSafe)
}

func encodeQueryPart(s string, opts *RenderOptions, safe func(byte) bool) string {
	var dontQuote string
	percentSpaces := false
	delim := opts.queryDelim()
	if opts != nil {
		percentSpaces = opts.QueryPercentSpaces
		dontQuote = opts.QueryDontQuote
	}
	shouldEscape := func(c byte) bool {
		if strings.IndexByte(dontQuote, c) >= 0 &&
			grammar.IsQueryChar(c) && c != '+' && c != delim[0] {
			return false
		}
		return !safe(c)
	}
	if percentSpaces {
		return grammar.Escape(s, shouldEscape)
	}
	return grammar.EscapePlus(s, shouldEscape)
}

func reencodeQueryString(pairs []string) string {
	encoded := make([]string, len(pairs))
	for i, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		encoded[i] = encodeQueryKey(grammar.UnescapePlus(key), nil)
		if ok {
			encoded[i] += "=" + encodeQueryValue(grammar.UnescapePlus(val), nil)
		}
	}
	return strings.Join(encoded, "&")
}
