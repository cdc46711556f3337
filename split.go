package urlkit

import (
	"net/url"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/urlkit/internal/grammar"
	"github.com/ghettovoice/urlkit/internal/util"
)

// defaultPorts maps schemes to their registered default ports. A URL whose
// explicit port equals its scheme's default omits the port on serialization.
var defaultPorts = map[string]uint16{
	"ftp":   21,
	"ssh":   22,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// DefaultPort returns the registered default port of the scheme, or 0 when
// the scheme has no registered default.
func DefaultPort(scheme string) uint16 {
	return defaultPorts[util.LCase(scheme)]
}

// colonSchemes lists schemes separated from the rest of the URL by just a
// ':', not '://'. For example "mailto:user@example.com".
var colonSchemes = map[string]bool{
	"mailto": true,
	"tel":    true,
	"sms":    true,
}

func isColonScheme(scheme string) bool {
	return colonSchemes[util.LCase(scheme)]
}

// SplitResult holds the five raw URL components produced by [SplitURL].
// All fields are kept encoded exactly as found in the input.
type SplitResult struct {
	// Scheme is unset when the input has no recognizable scheme, and set to
	// the empty string for a protocol-relative input ("//host/path").
	Scheme Opt[string]
	// Netloc is the authority between "//" and the path. HasAuthority
	// distinguishes a present-but-empty authority ("http://") from none.
	Netloc       string
	HasAuthority bool
	Path         string
	Query        string
	Fragment     string
}

// SplitURL splits a URL string into its five raw components without any
// decoding. A scheme is recognized only when followed by "://", or when it
// is a known colon-separated scheme like "mailto". This keeps inputs like
// "host:8000" intact as a path instead of mistaking "host" for a scheme,
// which a generic splitter registered-scheme table would do inconsistently.
func SplitURL(s string) SplitResult {
	var res SplitResult

	rest := s
	res.Scheme, rest = splitScheme(rest)

	if strings.HasPrefix(rest, "//") {
		res.HasAuthority = true
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		res.Netloc, rest = rest[:end], rest[end:]
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest, res.Fragment = rest[:i], rest[i+1:]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest, res.Query = rest[:i], rest[i+1:]
	}
	res.Path = rest
	return res
}

func splitScheme(s string) (Opt[string], string) {
	if strings.HasPrefix(strings.TrimLeft(s, " \t"), "//") {
		// Protocol-relative URL.
		return Some(""), strings.TrimLeft(s, " \t")
	}

	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return None[string](), s
	}
	scheme := s[:i]
	if !grammar.IsScheme(scheme) {
		return None[string](), s
	}
	if strings.HasPrefix(s[i:], "://") {
		return Some(util.LCase(scheme)), s[i+1:]
	}
	if isColonScheme(scheme) {
		return Some(util.LCase(scheme)), s[i+1:]
	}
	return None[string](), s
}

// JoinURL resolves a reference URL against a base URL per RFC 3986,
// e.g. JoinURL("http://a/b/c", "../d") == "http://a/d".
func JoinURL(base, ref string) (string, error) {
	bu, err := url.Parse(base)
	if err != nil {
		return "", errtrace.Wrap(newMalformedURLErr(err))
	}
	ru, err := url.Parse(ref)
	if err != nil {
		return "", errtrace.Wrap(newMalformedURLErr(err))
	}
	return bu.ResolveReference(ru).String(), nil
}
