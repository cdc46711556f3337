package grammar_test

import (
	"testing"

	"github.com/ghettovoice/urlkit/internal/grammar"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		cb   func(byte) bool
		want string
	}{
		{"empty", "", nil, ""},
		{"no escape", "abc-qwe!", nil, "abc-qwe!"},
		{"escape space", "a b", func(c byte) bool { return !grammar.IsCharUnreserved(c) }, "a%20b"},
		{
			"percent always reencoded",
			"100%25",
			func(c byte) bool { return !grammar.IsCharUnreserved(c) },
			"100%2525",
		},
		{
			"path segment safe",
			"a b:c@d&e/f",
			func(c byte) bool { return !grammar.IsPathSegmentCharSafe(c) },
			"a%20b:c@d&e%2Ff",
		},
		{
			"query key safe",
			"a=b&c;d+e",
			func(c byte) bool { return !grammar.IsQueryKeyCharSafe(c) },
			"a%3Db%26c%3Bd%2Be",
		},
		{
			"query value keeps equals",
			"a=b&c",
			func(c byte) bool { return !grammar.IsQueryValueCharSafe(c) },
			"a=b%26c",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cb := c.cb
			if cb == nil {
				cb = func(byte) bool { return false }
			}
			if got, want := grammar.Escape(c.str, cb), c.want; got != want {
				t.Errorf("grammar.Escape(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestEscapePlus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"space to plus", "a b c", "a+b+c"},
		{"plus escaped", "a+b", "a%2Bb"},
		{"percent escaped", "50%", "50%25"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cb := func(c byte) bool { return !grammar.IsQueryValueCharSafe(c) }
			if got, want := grammar.EscapePlus(c.str, cb), c.want; got != want {
				t.Errorf("grammar.EscapePlus(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"empty", "", ""},
		{"no unescape", "abc%ax%", "abc%ax%"},
		{"unescape some", "a%20b%2Fc", "a b/c"},
		{"unescape utf8", "%E4%B8%96", "世"},
		{"truncated", "a%2", "a%2"},
		{"lone percent at end", "a%", "a%"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.Unescape(c.str), c.want; got != want {
				t.Errorf("grammar.Unescape(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestUnescapePlus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"plus to space", "a+b", "a b"},
		{"mixed", "a+%2Bb", "a +b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.UnescapePlus(c.str), c.want; got != want {
				t.Errorf("grammar.UnescapePlus(%q) = %q, want %q", c.str, got, want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	// Escaping then unescaping must restore the input, including inputs
	// that already contain percent-encoded triplets.
	cases := []string{"", "abc", "a b", "100%", "a%20b", "/;?&=#"}

	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			t.Parallel()

			enc := grammar.Escape(s, func(c byte) bool { return !grammar.IsPathSegmentCharSafe(c) })
			if got := grammar.Unescape(enc); got != s {
				t.Errorf("grammar.Unescape(grammar.Escape(%q)) = %q via %q", s, got, enc)
			}
		})
	}
}
