package grammar

import (
	"github.com/ghettovoice/abnf"
	"github.com/ghettovoice/abnf/pkg/abnf_core"
)

// Rules below follow RFC 3986 section 3, except hostname which keeps the
// stricter RFC 1034 label shape (letter/digit/hyphen labels with an optional
// trailing dot).

var core = abnf_core.Operators()

func lit(r rune) abnf.Operator {
	return abnf.Literal(string(r), []byte(string(r)))
}

func runes(key string, rs ...rune) abnf.Operator {
	ops := make([]abnf.Operator, 0, len(rs))
	for _, r := range rs {
		ops = append(ops, lit(r))
	}
	return abnf.Alt(key, ops[0], ops[1:]...)
}

var alphanum = abnf.Alt("alphanum", core.ALPHA, core.DIGIT)

var scheme = abnf.Concat("scheme",
	core.ALPHA,
	abnf.Repeat0Inf(`*( ALPHA / DIGIT / "+" / "-" / "." )`,
		abnf.Alt(`ALPHA / DIGIT / "+" / "-" / "."`,
			core.ALPHA,
			core.DIGIT,
			runes(`"+" / "-" / "."`, '+', '-', '.'),
		),
	),
)

// Scheme matches the scheme rule: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func Scheme(s []byte, ns *abnf.Nodes) error {
	return scheme(s, 0, ns)
}

var domainlabel = abnf.Alt("domainlabel",
	abnf.Concat(`alphanum *( alphanum / "-" ) alphanum`,
		alphanum,
		abnf.Repeat0Inf(`*( alphanum / "-" )`, abnf.Alt(`alphanum / "-"`, alphanum, lit('-'))),
		alphanum,
	),
	alphanum,
)

var toplabel = abnf.Alt("toplabel",
	abnf.Concat(`ALPHA *( alphanum / "-" ) alphanum`,
		core.ALPHA,
		abnf.Repeat0Inf(`*( alphanum / "-" )`, abnf.Alt(`alphanum / "-"`, alphanum, lit('-'))),
		alphanum,
	),
	core.ALPHA,
)

var hostname = abnf.Concat("hostname",
	abnf.Repeat0Inf(`*( domainlabel "." )`, abnf.Concat(`domainlabel "."`, domainlabel, lit('.'))),
	toplabel,
	abnf.Optional(`[ "." ]`, lit('.')),
)

// Hostname matches a registered name: *( domainlabel "." ) toplabel [ "." ].
func Hostname(s []byte, ns *abnf.Nodes) error {
	return hostname(s, 0, ns)
}

var ipv4Address = abnf.Concat("IPv4address",
	abnf.Repeat("1*3DIGIT", 1, 3, core.DIGIT),
	lit('.'),
	abnf.Repeat("1*3DIGIT", 1, 3, core.DIGIT),
	lit('.'),
	abnf.Repeat("1*3DIGIT", 1, 3, core.DIGIT),
	lit('.'),
	abnf.Repeat("1*3DIGIT", 1, 3, core.DIGIT),
)

var host = abnf.Alt("host", hostname, ipv4Address)

// Host matches hostname / IPv4address. IPv6 literals are bracketed and
// handled by the caller before hitting the grammar.
func Host(s []byte, ns *abnf.Nodes) error {
	return host(s, 0, ns)
}

var unreserved = abnf.Alt("unreserved",
	alphanum,
	runes(`"-" / "." / "_" / "~"`, '-', '.', '_', '~'),
)

var pctEncoded = abnf.Concat("pct-encoded", lit('%'), core.HEXDIG, core.HEXDIG)

var segment = abnf.Repeat0Inf("segment",
	abnf.Alt("pchar",
		unreserved,
		pctEncoded,
		runes("sub-delims", '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '='),
		runes(`":" / "@"`, ':', '@'),
	),
)

// Segment matches an encoded path segment: *pchar.
func Segment(s []byte, ns *abnf.Nodes) error {
	return segment(s, 0, ns)
}

var queryKey = abnf.Repeat0Inf("query-key",
	abnf.Alt("query-key-char",
		unreserved,
		pctEncoded,
		runes(`"!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";"`,
			'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';'),
		runes(`":" / "@" / "/" / "?"`, ':', '@', '/', '?'),
	),
)

// QueryKey matches an encoded query key. The pair separator "=" is excluded.
func QueryKey(s []byte, ns *abnf.Nodes) error {
	return queryKey(s, 0, ns)
}

var queryValue = abnf.Repeat0Inf("query-value",
	abnf.Alt("query-value-char",
		unreserved,
		pctEncoded,
		runes(`"!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="`,
			'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '='),
		runes(`":" / "@" / "/" / "?"`, ':', '@', '/', '?'),
	),
)

// QueryValue matches an encoded query value: query-key-char plus "=".
func QueryValue(s []byte, ns *abnf.Nodes) error {
	return queryValue(s, 0, ns)
}
