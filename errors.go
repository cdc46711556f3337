package urlkit

//go:generate errtrace -w .

import (
	"github.com/ghettovoice/urlkit/internal/errorutil"
)

// Error is a string type that implements the error interface.
// All sentinel errors of the package are of this type.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMalformedURL is returned when an input string cannot be split into
	// URL components.
	ErrMalformedURL Error = "malformed url"
	// ErrInvalidScheme is returned on an attempt to set a scheme that does not
	// match the scheme grammar.
	ErrInvalidScheme Error = "invalid scheme"
	// ErrInvalidHost is returned on an attempt to set a host with disallowed
	// characters or malformed label structure.
	ErrInvalidHost Error = "invalid host"
	// ErrInvalidPort is returned on an attempt to set a port outside 1-65535
	// or a non-numeric port string.
	ErrInvalidPort Error = "invalid port"
	// ErrInvalidAuthority is returned for a netloc with malformed structure,
	// e.g. broken IPv6 bracket nesting.
	ErrInvalidAuthority Error = "invalid authority"
	// ErrImmutableState is returned on writes to component state that is
	// forced by the owning context, e.g. the absoluteness of a URL path while
	// the URL has an authority.
	ErrImmutableState Error = "immutable state"
)

func newMalformedURLErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedURL, args...) //errtrace:skip
}

func newInvalidSchemeErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidScheme, args...) //errtrace:skip
}

func newInvalidHostErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidHost, args...) //errtrace:skip
}

func newInvalidPortErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidPort, args...) //errtrace:skip
}

func newInvalidAuthorityErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidAuthority, args...) //errtrace:skip
}

func newImmutableStateErr(args ...any) error {
	return errorutil.NewWrapperError(ErrImmutableState, args...) //errtrace:skip
}
