package urlkit

// Opt represents an optional value of type T, distinguishing an omitted
// value from a present zero value. The zero Opt is omitted.
type Opt[T any] struct {
	val T
	set bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{val: v, set: true}
}

// None returns an omitted Opt. Equivalent to the zero value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the held value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.set
}

// IsSet reports whether the value is present.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// Or returns the held value if present, def otherwise.
func (o Opt[T]) Or(def T) T {
	if o.set {
		return o.val
	}
	return def
}

// RenderOptions control serialization of a URL and its components.
// The zero value reproduces the default String() form.
type RenderOptions struct {
	// QueryDelim separates query pairs. Empty means "&". ";" is the other
	// common choice.
	QueryDelim string
	// QueryPercentSpaces renders spaces in query keys and values as "%20"
	// instead of the default "+".
	QueryPercentSpaces bool
	// QueryDontQuote lists characters to leave unescaped in query keys and
	// values on top of the normally-safe set. Characters that would make the
	// output ambiguous (the pair delimiter, "+", "%") are ignored, so this
	// cannot be used to produce invalid query strings.
	QueryDontQuote string
}

func (o *RenderOptions) queryDelim() string {
	if o == nil || o.QueryDelim == "" {
		return "&"
	}
	return o.QueryDelim
}
