package url

import (
	"errors"
	"fmt"
	neturl "net/url"
	"strconv"
	"strings"
)

// ErrInvalidURL is returned when a string cannot be decomposed into a URL.
var ErrInvalidURL = errors.New("invalid url")

// defaultPorts maps schemes to the port implied when none is given.
var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
	"ftp":   21,
}

// URL is a decomposed, comparable URL value.
// Port is 0 when the URL carries no explicit port.
type URL struct {
	Scheme string
	Host   string
	Port   int
	Path   string // always starts with "/" for hierarchical URLs
	Query  string // without leading "?"
	Ref    string // without leading "#"
}

// Parse decomposes raw into a URL. Scheme and host are lower-cased and an
// empty path becomes "/".
func Parse(raw string) (URL, error) {
	parsed, err := neturl.Parse(strings.TrimSpace(raw))
	if err != nil {
		return URL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme == "" {
		return URL{}, fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, raw)
	}
	return FromStd(parsed)
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(raw string) URL {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// FromStd converts an already parsed net/url value.
func FromStd(parsed *neturl.URL) (URL, error) {
	if parsed == nil {
		return URL{}, fmt.Errorf("%w: nil url", ErrInvalidURL)
	}

	var port int
	if p := parsed.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return URL{}, fmt.Errorf("%w: bad port %q", ErrInvalidURL, p)
		}
		port = n
	}

	path := parsed.EscapedPath()
	if path == "" && parsed.Opaque == "" {
		path = "/"
	}
	if parsed.Opaque != "" {
		path = parsed.Opaque
	}

	return URL{
		Scheme: strings.ToLower(parsed.Scheme),
		Host:   strings.ToLower(parsed.Hostname()),
		Port:   port,
		Path:   path,
		Query:  parsed.RawQuery,
		Ref:    parsed.EscapedFragment(),
	}, nil
}

// EffectivePort returns the explicit port, or the scheme default when the
// URL has none. Unknown schemes without a port yield 0.
func (u URL) EffectivePort() int {
	if u.Port != 0 {
		return u.Port
	}
	return defaultPorts[u.Scheme]
}

// Equal reports whether both URLs are identical on every field, with an
// absent port equal to the scheme default.
func (u URL) Equal(other URL) bool {
	return u.Scheme == other.Scheme &&
		u.Host == other.Host &&
		u.EffectivePort() == other.EffectivePort() &&
		u.Path == other.Path &&
		u.Query == other.Query &&
		u.Ref == other.Ref
}

// IsZero reports whether u is the zero value.
func (u URL) IsZero() bool {
	return u == URL{}
}

func (u URL) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	if strings.Contains(u.Host, ":") {
		b.WriteString("[" + u.Host + "]")
	} else {
		b.WriteString(u.Host)
	}
	if u.Port != 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.Port))
	}
	b.WriteString(u.Path)
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.Ref != "" {
		b.WriteByte('#')
		b.WriteString(u.Ref)
	}
	return b.String()
}
