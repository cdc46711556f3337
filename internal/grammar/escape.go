package grammar

import (
	"bytes"

	"github.com/ghettovoice/urlkit/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// Lone '%' chars and invalid triplets are passed through unchanged.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// UnescapePlus unescapes s like [Unescape] and additionally converts each '+' into a space.
func UnescapePlus[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		case s[i] == '+':
			b.WriteByte(' ')
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by the shouldEscape callback with the hex form "% HEXDIG HEXDIG".
// A '%' char in s is always re-encoded as "%25", so Unescape(Escape(s)) == s holds for any s.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' || shouldEscape(s[i]) {
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// EscapePlus escapes s like [Escape] and additionally converts each space into a '+'.
func EscapePlus[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == ' ':
			b.WriteByte('+')
		case s[i] == '%' || s[i] == '+' || shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsAlphanumChar checks alphanum rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

var unreservedChars = map[byte]bool{
	'-': true,
	'.': true,
	'_': true,
	'~': true,
}

// IsCharUnreserved checks on unreserved rule.
func IsCharUnreserved(c byte) bool {
	return unreservedChars[c] || IsAlphanumChar(c)
}

var subDelimChars = map[byte]bool{
	'!':  true,
	'$':  true,
	'&':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'*':  true,
	'+':  true,
	',':  true,
	';':  true,
	'=':  true,
}

// IsCharSubDelim checks on sub-delims rule.
func IsCharSubDelim(c byte) bool {
	return subDelimChars[c]
}

// IsPathSegmentCharSafe reports whether c may appear unescaped in a path segment (pchar rule).
func IsPathSegmentCharSafe(c byte) bool {
	return c == ':' || c == '@' || IsCharSubDelim(c) || IsCharUnreserved(c)
}

var queryKeySafeChars = map[byte]bool{
	'/':  true,
	'?':  true,
	':':  true,
	'@':  true,
	'!':  true,
	'$':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'*':  true,
	',':  true,
}

// IsQueryKeyCharSafe reports whether c may appear unescaped in a query key.
// The query pair delimiters '&', ';' and '=' and the space stand-in '+' are excluded.
func IsQueryKeyCharSafe(c byte) bool {
	return queryKeySafeChars[c] || IsCharUnreserved(c)
}

// IsQueryValueCharSafe reports whether c may appear unescaped in a query value.
// Same as [IsQueryKeyCharSafe] plus '=', which is unambiguous after the first '=' of a pair.
func IsQueryValueCharSafe(c byte) bool {
	return c == '=' || IsQueryKeyCharSafe(c)
}

// IsQueryChar reports whether c is valid anywhere in an encoded query string (query rule).
func IsQueryChar(c byte) bool {
	return c == '/' || c == '?' || c == ':' || c == '@' || IsCharSubDelim(c) || IsCharUnreserved(c)
}
