package urlkit_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/urlkit"
)

func TestParseAuthority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		str      string
		wantUser string
		wantPass string
		wantHost string
		wantPort uint16
		wantErr  error
	}{
		{"empty", "", "", "", "", 0, nil},
		{"host only", "example.com", "", "", "example.com", 0, nil},
		{"host lowercased", "EXAMPLE.Com", "", "", "example.com", 0, nil},
		{"host and port", "example.com:8080", "", "", "example.com", 8080, nil},
		{"full", "user:pass@example.com:8080", "user", "pass", "example.com", 8080, nil},
		{"user only", "user@example.com", "user", "", "example.com", 0, nil},
		{"at sign in password splits at last at", "u:p@ss@example.com", "u", "p@ss", "example.com", 0, nil},
		{"ipv4", "127.0.0.1:81", "", "", "127.0.0.1", 81, nil},
		{"ipv6 bracketed", "[2001:db8::1]", "", "", "[2001:db8::1]", 0, nil},
		{"ipv6 bracketed with port", "[2001:db8::1]:8080", "", "", "[2001:db8::1]", 8080, nil},
		{"ipv6 colon beyond bracket", "[2001:db8::1]x:8080:9090", "", "", "", 0, urlkit.ErrInvalidAuthority},
		{"port zero", "example.com:0", "", "", "", 0, urlkit.ErrInvalidPort},
		{"port out of range", "example.com:65536", "", "", "", 0, urlkit.ErrInvalidPort},
		{"port not a number", "example.com:80a", "", "", "", 0, urlkit.ErrInvalidPort},
		{"empty port", "example.com:", "", "", "", 0, urlkit.ErrInvalidPort},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			a, err := urlkit.ParseAuthority(c.str)
			if c.wantErr != nil {
				if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
					t.Fatalf("urlkit.ParseAuthority(%q) error = %v, want %v", c.str, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("urlkit.ParseAuthority(%q) error = %v, want nil", c.str, err)
			}
			if got, _ := a.Username(); got != c.wantUser {
				t.Errorf("a.Username() = %q, want %q", got, c.wantUser)
			}
			if got, _ := a.Password(); got != c.wantPass {
				t.Errorf("a.Password() = %q, want %q", got, c.wantPass)
			}
			if got := a.Host(); got != c.wantHost {
				t.Errorf("a.Host() = %q, want %q", got, c.wantHost)
			}
			if got, _ := a.Port(); got != c.wantPort {
				t.Errorf("a.Port() = %d, want %d", got, c.wantPort)
			}
		})
	}
}

func TestAuthorityEmptyUserinfo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		str        string
		userSet    bool
		passSet    bool
		wantNetloc string
	}{
		{"empty username", "@example.com", true, false, "@example.com"},
		{"empty password", "user:@example.com", true, true, "user:@example.com"},
		{"empty both", ":@example.com", true, true, ":@example.com"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			a, err := urlkit.ParseAuthority(c.str)
			if err != nil {
				t.Fatalf("urlkit.ParseAuthority(%q) error = %v, want nil", c.str, err)
			}
			if _, ok := a.Username(); ok != c.userSet {
				t.Errorf("a.Username() set = %v, want %v", ok, c.userSet)
			}
			if _, ok := a.Password(); ok != c.passSet {
				t.Errorf("a.Password() set = %v, want %v", ok, c.passSet)
			}
			if got, want := a.String(), c.wantNetloc; got != want {
				t.Errorf("a.String() = %q, want %q", got, want)
			}
		})
	}
}

func TestAuthorityAtomicLoad(t *testing.T) {
	t.Parallel()

	a, err := urlkit.ParseAuthority("user@example.com:8080")
	if err != nil {
		t.Fatalf("urlkit.ParseAuthority() error = %v, want nil", err)
	}
	before := a.String()

	if err := a.Load("other.org:99999"); !errors.Is(err, urlkit.ErrInvalidPort) {
		t.Fatalf("a.Load() error = %v, want %v", err, urlkit.ErrInvalidPort)
	}
	if got := a.String(); got != before {
		t.Errorf("a.String() = %q after failed load, want %q", got, before)
	}
}

func TestAuthoritySetHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		host    string
		want    string
		wantErr error
	}{
		{"empty clears", "", "", nil},
		{"lowercased", "Example.COM", "example.com", nil},
		{"idna encoded", "ドメイン.テスト", "xn--eckwd4c7c.xn--zckzah", nil},
		{"bracketed ipv6", "[2001:db8::1]", "[2001:db8::1]", nil},
		{"unbracketed colon", "2001:db8::1", "", urlkit.ErrInvalidHost},
		{"dangling bracket", "[2001:db8::1", "", urlkit.ErrInvalidAuthority},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			a := new(urlkit.Authority)
			err := a.SetHost(c.host)
			if c.wantErr != nil {
				if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
					t.Fatalf("a.SetHost(%q) error = %v, want %v", c.host, err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("a.SetHost(%q) error = %v, want nil", c.host, err)
			}
			if got := a.Host(); got != c.want {
				t.Errorf("a.Host() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestAuthorityStrictHost(t *testing.T) {
	t.Parallel()

	a := new(urlkit.Authority)
	if err := a.SetHost("www.!yahoo!.com"); err != nil {
		t.Fatalf("a.SetHost() error = %v, want nil in non-strict mode", err)
	}

	if _, err := urlkit.ParseAuthority("www.!yahoo!.com", urlkit.WithStrict()); !errors.Is(err, urlkit.ErrInvalidHost) {
		t.Errorf("urlkit.ParseAuthority() error = %v, want %v in strict mode", err, urlkit.ErrInvalidHost)
	}
}

func TestAuthorityRender(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		str  string
		want string
	}{
		{"host only", "example.com", "example.com"},
		{"full", "user:pass@example.com:8080", "user:pass@example.com:8080"},
		{"user without password", "user@example.com", "user@example.com"},
		{"empty user with password", ":pass@example.com", ":pass@example.com"},
		{"ipv6", "[2001:db8::1]:8080", "[2001:db8::1]:8080"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			a, err := urlkit.ParseAuthority(c.str)
			if err != nil {
				t.Fatalf("urlkit.ParseAuthority(%q) error = %v, want nil", c.str, err)
			}
			if got, want := a.String(), c.want; got != want {
				t.Errorf("a.String() = %q, want %q", got, want)
			}
		})
	}
}

func TestAuthorityIP(t *testing.T) {
	t.Parallel()

	a, err := urlkit.ParseAuthority("127.0.0.1:81")
	if err != nil {
		t.Fatalf("urlkit.ParseAuthority() error = %v, want nil", err)
	}
	if ip := a.IP(); ip == nil || ip.String() != "127.0.0.1" {
		t.Errorf("a.IP() = %v, want 127.0.0.1", ip)
	}

	a2, err := urlkit.ParseAuthority("example.com")
	if err != nil {
		t.Fatalf("urlkit.ParseAuthority() error = %v, want nil", err)
	}
	if ip := a2.IP(); ip != nil {
		t.Errorf("a2.IP() = %v, want nil for a hostname", ip)
	}
}
