package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolver extracts client addresses from requests.
type Resolver struct {
	headers []string
}

// New returns a resolver trusting headers in the given priority order.
func New(trustedHeaders ...string) *Resolver {
	headers := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{headers: headers}
}

// IP returns the normalised client address, or "" when none is valid.
//
// For list headers such as X-Forwarded-For only the right-most entry is
// used: it was appended by the trusted proxy, while entries to its left are
// whatever the client sent.
func (rs *Resolver) IP(r *http.Request) string {
	for _, h := range rs.headers {
		if ip := parseIP(lastEntry(r.Header.Values(h))); ip != "" {
			return ip
		}
	}
	return RemoteIP(r)
}

// lastEntry returns the right-most comma separated entry across repeated
// header lines.
func lastEntry(values []string) string {
	if len(values) == 0 {
		return ""
	}
	last := values[len(values)-1]
	if i := strings.LastIndexByte(last, ','); i >= 0 {
		last = last[i+1:]
	}
	return last
}

// RemoteIP returns the address of the TCP peer.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
