// Package urlkit provides parsing and manipulation of URLs as structured,
// mutable values.
//
// A [Url] decomposes into a scheme, an [Authority] (username, password, host,
// port), a [Path] of decoded segments, a [Query] of ordered key/value
// parameters and a [Fragment] (itself a path and a query). Components are
// stored decoded and re-encoded on serialization, so callers work with plain
// strings and never hand-assemble percent-encodings:
//
//	u, err := urlkit.Parse("https://www.google.com/?one=1&two=2")
//	// ...
//	u.Path().Load("/search")
//	u.Args().Set("query", urlkit.V("urlkit"))
//	s := u.String() // "https://www.google.com/search?one=1&two=2&query=urlkit"
//
// Mutations through [Url.Set] are atomic: when any part of the call fails
// the URL rolls back to its prior state. Lossy or ambiguous inputs raise
// advisory warnings, see [Url.Warnings], they never fail an operation. The
// [WithStrict] option additionally warns about improperly encoded input
// strings, and the [WithLogger] option mirrors warnings to a [log/slog]
// logger.
package urlkit

//go:generate go tool errtrace -w .
