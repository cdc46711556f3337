// Package grammar implements the URL character grammar: percent encoding and
// decoding plus validators for the scheme, host, path and query rules.
package grammar

//go:generate errtrace -w .

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/urlkit/internal/constraints"
)

func init() {
	abnf.EnableNodeCache(10 * 1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func matchFull(rule func([]byte, *abnf.Nodes) error, s []byte) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := rule(s, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsScheme reports whether s is a valid scheme: a letter followed by
// letters, digits, "+", "-" or ".".
func IsScheme[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchFull(Scheme, []byte(s))
}

// IsHost reports whether s is a valid registered name or IPv4 address.
// Bracketed IPv6 literals are not accepted here.
func IsHost[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchFull(Host, []byte(s))
}

// IsEncodedPathSegment reports whether s is a correctly encoded path segment:
// any mix of pchar runs and "%XX" triplets. Empty segments are valid.
func IsEncodedPathSegment[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return matchFull(Segment, []byte(s))
}

// IsEncodedQueryKey reports whether s is a correctly encoded query key.
func IsEncodedQueryKey[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return matchFull(QueryKey, []byte(s))
}

// IsEncodedQueryValue reports whether s is a correctly encoded query value.
func IsEncodedQueryValue[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return true
	}
	return matchFull(QueryValue, []byte(s))
}
