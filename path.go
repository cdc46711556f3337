package urlkit

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlkit/internal/grammar"
	"github.com/ghettovoice/urlkit/internal/ioutil"
	"github.com/ghettovoice/urlkit/internal/util"
)

// Path represents a URL or fragment path as a list of zero or more decoded
// segments. The trailing slash of a directory path is modeled as a final
// empty segment: "/a/b/" has segments ["a", "b", ""].
//
// A URL path is forced absolute while its owning URL has an authority.
// In that state [Path.SetAbsolute] fails with [ErrImmutableState]. Fragment
// paths are never forced absolute.
type Path struct {
	segments []string
	abs      bool
	forced   bool
	strict   bool
	diags    *diagnostics
}

// NewPath returns a path loaded from the given path string.
func NewPath(s string, opts ...Option) *Path {
	cfg := newConfig(opts...)
	p := &Path{strict: cfg.strict, diags: cfg.diags()}
	p.Load(s)
	return p
}

// Load replaces the path with s. Segments are split on "/" and decoded.
func (p *Path) Load(s string) *Path {
	if s == "" {
		p.loadSegments(nil)
		return p
	}
	p.loadSegments(p.segmentsFromString(s))
	return p
}

// LoadSegments replaces the path with the given decoded segments.
// A leading empty segment marks an absolute path, mirroring string form.
func (p *Path) LoadSegments(segments ...string) *Path {
	p.loadSegments(slices.Clone(segments))
	return p
}

func (p *Path) loadSegments(segments []string) {
	if len(segments) > 0 && segments[0] == "" || p.forced && len(segments) > 0 {
		p.abs = true
	} else {
		p.abs = false
	}
	if p.abs && len(segments) > 1 && segments[0] == "" {
		segments = segments[1:]
	}
	p.segments = segments
}

// Add appends the path string s to the path, joining at the segment border:
// a trailing empty segment of the current path merges with the head of the
// addition so no double slash is produced.
func (p *Path) Add(s string) *Path {
	return p.addSegments(p.segmentsFromString(s))
}

// AddSegments appends the given decoded segments to the path.
func (p *Path) AddSegments(segments ...string) *Path {
	return p.addSegments(slices.Clone(segments))
}

func (p *Path) addSegments(newSegments []string) *Path {
	// Keep the opening '/' when the path is just "/".
	if len(p.segments) == 1 && p.segments[0] == "" &&
		len(newSegments) > 0 && newSegments[0] != "" {
		newSegments = append([]string{""}, newSegments...)
	}

	base := p.segments
	if p.IsAbsolute() && len(base) > 0 && base[0] != "" {
		base = append([]string{""}, base...)
	}

	p.loadSegments(joinSegments(base, newSegments))
	return p
}

// Set replaces the path with s. Alias of [Path.Load].
func (p *Path) Set(s string) *Path {
	return p.Load(s)
}

// Remove strips the path string s off the end of the path. The removal only
// applies when s matches a trailing run of segments, a relative suffix leaves
// a trailing slash behind.
func (p *Path) Remove(s string) *Path {
	return p.removeSegments(p.segmentsFromString(s))
}

// RemoveSegments strips the given decoded segments off the end of the path.
func (p *Path) RemoveSegments(segments ...string) *Path {
	return p.removeSegments(slices.Clone(segments))
}

func (p *Path) removeSegments(remove []string) *Path {
	base := slices.Clone(p.segments)
	if p.IsAbsolute() {
		base = append([]string{""}, base...)
	}
	p.loadSegments(removeSegments(base, remove))
	return p
}

// Clear removes all segments and resets the path to empty.
func (p *Path) Clear() *Path {
	return p.Load("")
}

// Normalize collapses the path in place: "//a/./b/../c//" becomes "/a/c/".
// The trailing slash of a directory path is preserved.
func (p *Path) Normalize() *Path {
	s := p.String()
	if s == "" {
		return p
	}
	isdir := p.IsDir()
	normalized := path.Clean(s)
	if strings.HasPrefix(normalized, "//") {
		normalized = "/" + strings.TrimLeft(normalized, "/")
	}
	if isdir && !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return p.Load(normalized)
}

// Segments returns a copy of the decoded path segments.
func (p *Path) Segments() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.segments)
}

// IsAbsolute reports whether the path starts with a '/'.
func (p *Path) IsAbsolute() bool {
	if p == nil {
		return false
	}
	if p.forced && len(p.segments) > 0 {
		return true
	}
	return p.abs
}

// SetAbsolute makes the path absolute or relative. It fails with
// [ErrImmutableState] while the path is forced absolute by an authority:
// a URL with a host cannot have a relative path.
func (p *Path) SetAbsolute(abs bool) error {
	if p.forced && len(p.segments) > 0 {
		return errtrace.Wrap(newImmutableStateErr(
			"path is absolute and read-only while the URL has an authority"))
	}
	p.abs = abs
	return nil
}

// IsDir reports whether the path ends on a directory, that is the path is
// empty or its last segment is empty (the trailing '/').
func (p *Path) IsDir() bool {
	if p == nil {
		return true
	}
	return len(p.segments) == 0 || p.segments[len(p.segments)-1] == ""
}

// IsFile reports whether the path ends on a file, the inverse of [Path.IsDir].
func (p *Path) IsFile() bool {
	return !p.IsDir()
}

// IsEmpty reports whether the path renders to an empty string.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.segments) == 0 && !p.IsAbsolute()
}

// RenderTo writes the encoded path to the provided writer.
func (p *Path) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if p == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	segments := p.segments
	if p.IsAbsolute() {
		if len(segments) == 0 {
			segments = []string{"", ""}
		} else {
			segments = append([]string{""}, segments...)
		}
	}
	for i, segment := range segments {
		if i > 0 {
			cw.WriteByte('/') //nolint:errcheck
		}
		cw.WriteString(encodePathSegment(segment)) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the encoded string representation of the path.
func (p *Path) Render(opts *RenderOptions) string {
	if p == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	p.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the encoded string representation of the path.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	return p.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the path.
func (p *Path) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, p.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.String()))
	default:
		type hideMethods Path
		type Path hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Path)(p))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (p *Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Path) UnmarshalText(text []byte) error {
	p.Load(string(text))
	return nil
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	p2 := *p
	p2.segments = slices.Clone(p.segments)
	return &p2
}

// Equal compares this path with another for equality by segments and
// absoluteness.
func (p *Path) Equal(val any) bool {
	var other *Path
	switch v := val.(type) {
	case Path:
		other = &v
	case *Path:
		other = v
	default:
		return false
	}

	if p == other {
		return true
	} else if p == nil || other == nil {
		return false
	}
	return p.IsAbsolute() == other.IsAbsolute() && slices.Equal(p.segments, other.segments)
}

func (p *Path) segmentsFromString(s string) []string {
	segments := strings.Split(s, "/")
	if p.strict {
		for _, segment := range segments {
			if !grammar.IsEncodedPathSegment(segment) {
				p.diags.warnf(WarnEncoding,
					"improperly encoded path string received: %q, proceeding, but did you mean %q?",
					s, encodePathString(segments))
				break
			}
		}
	}
	for i, segment := range segments {
		segments[i] = grammar.Unescape(segment)
	}
	return segments
}

func encodePathSegment(segment string) string {
	return grammar.Escape(segment, func(c byte) bool { return !grammar.IsPathSegmentCharSafe(c) })
}

func encodePathString(segments []string) string {
	encoded := make([]string, len(segments))
	for i, segment := range segments {
		encoded[i] = encodePathSegment(grammar.Unescape(segment))
	}
	return strings.Join(encoded, "/")
}

// joinSegments joins lists of path segments, merging at the list borders to
// preserve the intended slashes of the final constructed path:
//
//	joinSegments(["a"], ["b"]) == ["a", "b"]
//	joinSegments(["a", ""], ["b"]) == ["a", "b"]
//	joinSegments(["a"], ["", "b"]) == ["a", "b"]
//	joinSegments(["a", ""], ["", "b"]) == ["a", "", "b"]
func joinSegments(lists ...[]string) []string {
	var finals []string
	for _, segments := range lists {
		switch {
		case len(segments) == 0 || len(segments) == 1 && segments[0] == "":
			continue
		case len(finals) == 0:
			finals = append(finals, segments...)
		default:
			if finals[len(finals)-1] == "" && (segments[0] != "" || len(segments) > 1) {
				finals = finals[:len(finals)-1]
			} else if finals[len(finals)-1] != "" && segments[0] == "" && len(segments) > 1 {
				segments = segments[1:]
			}
			finals = append(finals, segments...)
		}
	}
	return finals
}

// removeSegments removes the path segments of remove from the end of
// segments:
//
//	removeSegments(["", "a", "b", "c"], ["b", "c"]) == ["", "a", ""]
//	removeSegments(["", "a", "b", "c"], ["", "b", "c"]) == ["", "a"]
//
// If remove does not match a trailing run of segments, segments is returned
// unmodified.
func removeSegments(segments, remove []string) []string {
	// [""] means a '/', which is properly represented by ["", ""].
	if len(segments) == 1 && segments[0] == "" {
		segments = append(segments, "")
	}
	if len(remove) == 1 && remove[0] == "" {
		remove = append(remove, "")
	}

	switch {
	case slices.Equal(remove, segments):
		return []string{}
	case len(remove) > len(segments):
		return segments
	}

	toremove := remove
	if len(remove) > 1 && remove[0] == "" {
		toremove = remove[1:]
	}

	if len(toremove) > 0 && slices.Equal(toremove, segments[len(segments)-len(toremove):]) {
		ret := slices.Clone(segments[:len(segments)-len(toremove)])
		if remove[0] != "" && len(ret) > 0 {
			ret = append(ret, "")
		}
		return ret
	}
	return segments
}
