package urlkit

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"
	"golang.org/x/net/idna"

	"github.com/ghettovoice/urlkit/internal/grammar"
	"github.com/ghettovoice/urlkit/internal/ioutil"
	"github.com/ghettovoice/urlkit/internal/util"
)

// Authority represents the userinfo@host:port portion of a URL.
//
// The username and password are kept as given, the host is lowercased and
// IDNA-encoded on intake. A bracketed host is treated as an IPv6 literal and
// exempted from hostname validation.
type Authority struct {
	username Opt[string]
	password Opt[string]
	host     string
	ip       net.IP
	port     Opt[uint16]
	strict   bool
	diags    *diagnostics
}

// ParseAuthority parses a netloc string like "user:pass@host:port".
func ParseAuthority(s string, opts ...Option) (*Authority, error) {
	cfg := newConfig(opts...)
	a := &Authority{strict: cfg.strict, diags: cfg.diags()}
	if err := a.Load(s); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return a, nil
}

// Load replaces the authority with the parsed netloc string. The userinfo is
// split off at the last '@', the port at the first ':' after the closing
// bracket of an IPv6 literal. Load is atomic: on error the authority is left
// unchanged.
func (a *Authority) Load(s string) error {
	if s == "" {
		a.username, a.password = None[string](), None[string]()
		a.host, a.ip = "", nil
		a.port = None[uint16]()
		return nil
	}

	var username, password Opt[string]
	rest := s
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		userpass := s[:i]
		rest = s[i+1:]
		// An empty username or password is kept as set-but-empty so
		// "@host" and "user:@host" survive a round trip.
		user, pass, hasPass := strings.Cut(userpass, ":")
		username = Some(user)
		if hasPass {
			password = Some(pass)
		}
	}

	hostStr := rest
	portStr := ""
	if strings.ContainsRune(rest, ':') {
		if bracketpos := strings.LastIndexByte(rest, ']'); bracketpos >= 0 {
			colonpos := strings.LastIndexByte(rest, ':')
			switch {
			case colonpos == bracketpos+1:
				hostStr, portStr = rest[:colonpos], rest[colonpos+1:]
			case colonpos > bracketpos:
				return errtrace.Wrap(newInvalidAuthorityErr("netloc %q", s))
			}
		} else {
			colonpos := strings.LastIndexByte(rest, ':')
			hostStr, portStr = rest[:colonpos], rest[colonpos+1:]
		}
	}

	// The port is validated before the host so an invalid port never leaves
	// a partially updated authority behind.
	var port Opt[uint16]
	if portStr != "" || hostStr != rest {
		p, err := parsePort(portStr)
		if err != nil {
			return errtrace.Wrap(err)
		}
		port = Some(p)
	}

	a2 := Authority{strict: a.strict, diags: a.diags, username: username, password: password, port: port}
	if err := a2.SetHost(hostStr); err != nil {
		return errtrace.Wrap(err)
	}

	*a = a2
	return nil
}

// Username returns the username and whether it is set.
func (a *Authority) Username() (string, bool) {
	if a == nil {
		return "", false
	}
	return a.username.Get()
}

// SetUsername sets the username. An empty username is kept and still renders
// the '@' sign.
func (a *Authority) SetUsername(username string) {
	a.username = Some(username)
}

// ClearUsername removes the username.
func (a *Authority) ClearUsername() {
	a.username = None[string]()
}

// Password returns the password and whether it is set.
func (a *Authority) Password() (string, bool) {
	if a == nil {
		return "", false
	}
	return a.password.Get()
}

// SetPassword sets the password.
func (a *Authority) SetPassword(password string) {
	a.password = Some(password)
}

// ClearPassword removes the password.
func (a *Authority) ClearPassword() {
	a.password = None[string]()
}

// Host returns the host: a domain name, an IPv4 address or a bracketed IPv6
// literal. Empty when no host is set.
func (a *Authority) Host() string {
	if a == nil {
		return ""
	}
	return a.host
}

// IP returns the host as an IP address, or nil when the host is not an IP
// literal.
func (a *Authority) IP() net.IP {
	if a == nil {
		return nil
	}
	return a.ip
}

// SetHost sets the host. The host is lowercased, a host with non-ASCII
// letters is IDNA-encoded to its ASCII form. A bracketed IPv6 literal is
// accepted as-is after a bracket structure check. In strict mode a hostname
// with malformed label structure fails with [ErrInvalidHost].
func (a *Authority) SetHost(host string) error {
	if host == "" {
		a.host, a.ip = "", nil
		return nil
	}

	if strings.ContainsAny(host, "[]") {
		if !strings.HasPrefix(host, "[") || !strings.HasSuffix(host, "]") ||
			strings.Count(host, "[") != 1 || strings.Count(host, "]") != 1 {
			return errtrace.Wrap(newInvalidAuthorityErr("malformed IP literal %q", host))
		}
		host = util.LCase(host)
		a.host, a.ip = host, net.ParseIP(host[1:len(host)-1])
		return nil
	}

	if strings.ContainsRune(host, ':') {
		return errtrace.Wrap(newInvalidHostErr("unbracketed %q", host))
	}

	host = util.LCase(host)
	if utf8.RuneCountInString(host) < len(host) {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return errtrace.Wrap(newInvalidHostErr("%q: %w", host, err))
		}
		host = ascii
	}
	if a.strict && !grammar.IsHost(host) {
		return errtrace.Wrap(newInvalidHostErr("%q", host))
	}

	a.host, a.ip = host, net.ParseIP(host)
	return nil
}

// ClearHost removes the host.
func (a *Authority) ClearHost() {
	a.host, a.ip = "", nil
}

// Port returns the explicit port and whether one is set.
func (a *Authority) Port() (uint16, bool) {
	if a == nil {
		return 0, false
	}
	return a.port.Get()
}

// SetPort sets the port. Valid ports are 1-65535.
func (a *Authority) SetPort(port int) error {
	if port < 1 || port > 65535 {
		return errtrace.Wrap(newInvalidPortErr("%d", port))
	}
	a.port = Some(uint16(port))
	return nil
}

// ClearPort removes the port.
func (a *Authority) ClearPort() {
	a.port = None[uint16]()
}

// IsZero reports whether no authority component is set.
func (a *Authority) IsZero() bool {
	return a == nil ||
		!a.username.IsSet() && !a.password.IsSet() && a.host == "" && !a.port.IsSet()
}

// RenderTo writes the netloc string to the provided writer. The explicit
// port is always included, default-port omission is applied by the owning
// URL which knows the scheme.
func (a *Authority) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if a == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	a.renderTo(cw, 0)
	return errtrace.Wrap2(cw.Result())
}

func (a *Authority) renderTo(cw *ioutil.CountingWriter, omitPort uint16) {
	if a.username.IsSet() || a.password.IsSet() {
		cw.WriteString(a.username.Or("")) //nolint:errcheck
		if pass, ok := a.password.Get(); ok {
			cw.WriteByte(':')     //nolint:errcheck
			cw.WriteString(pass) //nolint:errcheck
		}
		cw.WriteByte('@') //nolint:errcheck
	}
	cw.WriteString(a.host) //nolint:errcheck
	if port, ok := a.port.Get(); ok && port != omitPort {
		cw.WriteByte(':')                                    //nolint:errcheck
		cw.WriteString(strconv.FormatUint(uint64(port), 10)) //nolint:errcheck
	}
}

// Render returns the netloc string representation of the authority.
func (a *Authority) Render(opts *RenderOptions) string {
	if a == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	a.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the netloc string representation of the authority.
func (a *Authority) String() string {
	if a == nil {
		return ""
	}
	return a.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the authority.
func (a *Authority) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, a.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
	default:
		type hideMethods Authority
		type Authority hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Authority)(a))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (a *Authority) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Authority) UnmarshalText(text []byte) error {
	return errtrace.Wrap(a.Load(string(text)))
}

// Clone returns a deep copy of the authority.
func (a *Authority) Clone() *Authority {
	if a == nil {
		return nil
	}
	a2 := *a
	if a.ip != nil {
		a2.ip = append(net.IP(nil), a.ip...)
	}
	return &a2
}

// Equal compares this authority with another for equality by all components.
func (a *Authority) Equal(val any) bool {
	var other *Authority
	switch v := val.(type) {
	case Authority:
		other = &v
	case *Authority:
		other = v
	default:
		return false
	}

	if a == other {
		return true
	} else if a == nil || other == nil {
		return false
	}
	return a.username == other.username &&
		a.password == other.password &&
		a.host == other.host &&
		a.port == other.port
}

func parsePort(s string) (uint16, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errtrace.Wrap(newInvalidPortErr("%q", s))
		}
	}
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil || port == 0 {
		return 0, errtrace.Wrap(newInvalidPortErr("%q", s))
	}
	return uint16(port), nil
}
