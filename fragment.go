package urlkit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlkit/internal/ioutil"
	"github.com/ghettovoice/urlkit/internal/util"
)

// Fragment represents a URL fragment comprised of a path and a query
// optionally separated by a '?' character.
//
// When the separator is disabled no '?' separates the fragment path from
// the fragment query, which builds fragments like "#!a=1&b=2".
type Fragment struct {
	path      Path
	query     Query
	separator bool
}

// NewFragment returns a fragment loaded from the given fragment string.
func NewFragment(s string, opts ...Option) *Fragment {
	cfg := newConfig(opts...)
	f := newFragment(cfg.strict, cfg.diags())
	f.Load(s)
	return f
}

func newFragment(strict bool, diags *diagnostics) *Fragment {
	return &Fragment{
		path:      Path{strict: strict, diags: diags},
		query:     Query{strict: strict, diags: diags},
		separator: true,
	}
}

// Path returns the fragment path. A fragment path is never forced absolute.
func (f *Fragment) Path() *Path {
	if f == nil {
		return nil
	}
	return &f.path
}

// Query returns the fragment query.
func (f *Fragment) Query() *Query {
	if f == nil {
		return nil
	}
	return &f.query
}

// HasSeparator reports whether a '?' separates the path from the query in
// the string representation.
func (f *Fragment) HasSeparator() bool {
	return f != nil && f.separator
}

// SetSeparator toggles the '?' separator between the fragment path and query.
func (f *Fragment) SetSeparator(on bool) *Fragment {
	f.separator = on
	return f
}

// Load replaces the fragment with s, deciding heuristically which part of s
// is a path and which is a query. A lone token with '=' loads as a query,
// without '=' as a path. With a '?' present, the tail must contain '=' to
// load as a query, otherwise the whole string is adopted as a path so inputs
// like "a?b?" survive unchanged.
func (f *Fragment) Load(s string) *Fragment {
	f.path.Load("")
	f.query.Load(nil)

	head, tail, cut := strings.Cut(s, "?")
	switch {
	case !cut && strings.ContainsRune(s, '='):
		f.query.Load(QueryString(s))
	case !cut:
		f.path.Load(s)
	case strings.ContainsRune(tail, '='):
		f.path.Load(head)
		f.query.Load(QueryString(tail))
	default:
		f.path.Load(s)
	}
	return f
}

// Clear resets the fragment to empty.
func (f *Fragment) Clear() *Fragment {
	return f.Load("")
}

// IsEmpty reports whether both the fragment path and query are empty.
func (f *Fragment) IsEmpty() bool {
	return f == nil || f.path.IsEmpty() && f.query.IsEmpty()
}

// RenderTo writes the encoded fragment to the provided writer.
func (f *Fragment) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if f == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	path := f.path.Render(opts)
	query := f.query.Render(opts)

	// Without a query or separator a '?' is unambiguous inside the fragment,
	// keep it readable instead of its "%3F" form.
	if path != "" && (query == "" || !f.separator) {
		path = strings.ReplaceAll(path, "%3F", "?")
	}

	cw.WriteString(path) //nolint:errcheck
	if path != "" && query != "" && f.separator {
		cw.WriteByte('?') //nolint:errcheck
	}
	cw.WriteString(query) //nolint:errcheck
	return errtrace.Wrap2(cw.Result())
}

// Render returns the encoded string representation of the fragment.
func (f *Fragment) Render(opts *RenderOptions) string {
	if f == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	f.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the encoded string representation of the fragment.
func (f *Fragment) String() string {
	if f == nil {
		return ""
	}
	return f.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the fragment.
func (f *Fragment) Format(fs fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(fs, f.String())
	case 'q':
		fmt.Fprint(fs, strconv.Quote(f.String()))
	default:
		type hideMethods Fragment
		type Fragment hideMethods
		fmt.Fprintf(fs, fmt.FormatString(fs, verb), (*Fragment)(f))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (f *Fragment) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Fragment) UnmarshalText(text []byte) error {
	f.Load(string(text))
	return nil
}

// Clone returns a deep copy of the fragment.
func (f *Fragment) Clone() *Fragment {
	if f == nil {
		return nil
	}
	f2 := *f
	f2.path = *f.path.Clone()
	f2.query = *f.query.Clone()
	return &f2
}

// Equal compares this fragment with another for equality by path, query and
// separator.
func (f *Fragment) Equal(val any) bool {
	var other *Fragment
	switch v := val.(type) {
	case Fragment:
		other = &v
	case *Fragment:
		other = v
	default:
		return false
	}

	if f == other {
		return true
	} else if f == nil || other == nil {
		return false
	}
	return f.separator == other.separator &&
		f.path.Equal(&other.path) &&
		f.query.Equal(&other.query)
}
