package urlkit_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/urlkit"
)

func TestQueryLoadString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		str       string
		wantItems []urlkit.Item
		wantStr   string
	}{
		{"empty", "", nil, ""},
		{
			"simple",
			"a=1&b=2",
			[]urlkit.Item{urlkit.Pair("a", "1"), urlkit.Pair("b", "2")},
			"a=1&b=2",
		},
		{
			"repeated key",
			"x=1&y=2&x=3",
			[]urlkit.Item{urlkit.Pair("x", "1"), urlkit.Pair("y", "2"), urlkit.Pair("x", "3")},
			"x=1&y=2&x=3",
		},
		{
			"bare vs empty value",
			"flag&a=",
			[]urlkit.Item{urlkit.BareKey("flag"), urlkit.Pair("a", "")},
			"flag&a=",
		},
		{
			"decoded on intake",
			"a+b=c%20d&e=%26",
			[]urlkit.Item{urlkit.Pair("a b", "c d"), urlkit.Pair("e", "&")},
			"a+b=c+d&e=%26",
		},
		{
			"empty chunks skipped",
			"&&a=1&",
			[]urlkit.Item{urlkit.Pair("a", "1")},
			"a=1",
		},
		{
			"value keeps equals",
			"a=b=c",
			[]urlkit.Item{urlkit.Pair("a", "b=c")},
			"a=b=c",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			q := urlkit.NewQuery(urlkit.QueryString(c.str))
			if diff := cmp.Diff(q.Params().Items(), c.wantItems, valueComparer()); diff != "" {
				t.Errorf("q.Params().Items() diff (-got +want):\n%v", diff)
			}
			if got, want := q.String(), c.wantStr; got != want {
				t.Errorf("q.String() = %q, want %q", got, want)
			}
		})
	}
}

func TestQuerySources(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  urlkit.QuerySource
		want string
	}{
		{"nil", nil, ""},
		{
			"items",
			urlkit.QueryItems{urlkit.Pair("b", "2"), urlkit.Pair("a", "1")},
			"b=2&a=1",
		},
		{
			"map sorted",
			urlkit.QueryMap{"b": "2", "a": "1"},
			"a=1&b=2",
		},
		{
			"multi map",
			urlkit.QueryMultiMap{"a": {"1", "2"}, "b": {"3"}},
			"a=1&a=2&b=3",
		},
		{
			"multi map empty slice ignored on load",
			urlkit.QueryMultiMap{"a": {"1"}, "b": {}},
			"a=1",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			q := urlkit.NewQuery(c.src)
			if got, want := q.String(), c.want; got != want {
				t.Errorf("q.String() = %q, want %q", got, want)
			}
		})
	}
}

func TestQueryAdd(t *testing.T) {
	t.Parallel()

	q := urlkit.NewQuery(urlkit.QueryString("a=1")).
		Add(urlkit.QueryString("a=2&b=3")).
		Add(urlkit.QueryItems{urlkit.BareKey("flag")})

	if got, want := q.String(), "a=1&a=2&b=3&flag"; got != want {
		t.Errorf("q.String() = %q, want %q", got, want)
	}
}

func TestQuerySet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		init string
		src  urlkit.QuerySource
		want string
	}{
		{
			"replace in place",
			"a=1&b=2&a=3",
			urlkit.QueryString("a=x"),
			"a=x&b=2",
		},
		{
			"append new",
			"a=1",
			urlkit.QueryString("b=2"),
			"a=1&b=2",
		},
		{
			"multi map delete via empty slice",
			"a=1&b=2",
			urlkit.QueryMultiMap{"b": {}},
			"a=1",
		},
		{
			"surplus values appended at end",
			"a=1&b=2",
			urlkit.QueryString("a=x&a=y"),
			"a=x&b=2&a=y",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			q := urlkit.NewQuery(urlkit.QueryString(c.init)).Set(c.src)
			if got, want := q.String(), c.want; got != want {
				t.Errorf("q.String() = %q, want %q", got, want)
			}
		})
	}
}

func TestQueryRemove(t *testing.T) {
	t.Parallel()

	q := urlkit.NewQuery(urlkit.QueryString("a=1&b=2&a=3&c=4"))
	q.Remove("a")
	if got, want := q.String(), "b=2&c=4"; got != want {
		t.Errorf("q.String() = %q, want %q", got, want)
	}

	q.RemoveItems(urlkit.Pair("b", "2"), urlkit.Pair("c", "zzz"))
	if got, want := q.String(), "c=4"; got != want {
		t.Errorf("q.String() = %q, want %q", got, want)
	}
}

func TestQueryRenderOptions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		opts *urlkit.RenderOptions
		want string
	}{
		{
			"semicolon delimiter",
			"a=1&b=2",
			&urlkit.RenderOptions{QueryDelim: ";"},
			"a=1;b=2",
		},
		{
			"percent encoded spaces",
			"a=b c",
			&urlkit.RenderOptions{QueryPercentSpaces: true},
			"a=b%20c",
		},
		{
			"semicolon escaped by default",
			"a=b;c",
			nil,
			"a=b%3Bc",
		},
		{
			"dont quote exempts semicolon",
			"a=b;c",
			&urlkit.RenderOptions{QueryDontQuote: ";"},
			"a=b;c",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			q := urlkit.NewQuery(urlkit.QueryString(c.str))
			if got, want := q.Render(c.opts), c.want; got != want {
				t.Errorf("q.Render(%+v) = %q, want %q", c.opts, got, want)
			}
		})
	}
}

func TestQueryEncode(t *testing.T) {
	t.Parallel()

	q := urlkit.NewQuery(urlkit.QueryString("a=1&b=2"))
	if got, want := q.Encode(";"), "a=1;b=2"; got != want {
		t.Errorf(`q.Encode(";") = %q, want %q`, got, want)
	}
}

func TestQueryStrictWarns(t *testing.T) {
	t.Parallel()

	u := urlkit.New(urlkit.WithStrict())
	if err := u.Load("?a=b c"); err != nil {
		t.Fatalf("u.Load() error = %v, want nil", err)
	}
	warns := u.Warnings()
	if len(warns) != 1 || warns[0].Kind != urlkit.WarnEncoding {
		t.Fatalf("u.Warnings() = %v, want one encoding warning", warns)
	}
	if got, want := u.String(), "?a=b+c"; got != want {
		t.Errorf("u.String() = %q, want %q", got, want)
	}
}
