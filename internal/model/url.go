package model

import (
	"fmt"
	"net/url"
	"strings"
)

// placeholderHosts are hosts that look valid but never identify a real
// publisher. URLs pointing at them are rejected both for source rows and for
// registry homepages.
var placeholderHosts = []string{
	"localhost",
	"example.com",
	"example.org",
	"example.net",
	"test.com",
	"invalid",
	"127.0.0.1",
	"0.0.0.0",
}

// ValidateSourceURL enforces the URL rules shared by incident_sources rows
// and source homepages: non-empty, http(s) scheme, a real-looking host.
func ValidateSourceURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url does not parse: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme %q is not http(s)", u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("url has no host")
	}
	for _, ph := range placeholderHosts {
		if host == ph || strings.HasSuffix(host, "."+ph) {
			return fmt.Errorf("url host %q is a placeholder", host)
		}
	}
	if !strings.Contains(host, ".") {
		return fmt.Errorf("url host %q is not a fully qualified domain", host)
	}
	return nil
}

// DomainOf returns the lowercased registrable host of a URL, or "" if the URL
// does not parse. Used for registry trust-weight lookups and the source-name
// fallback chain.
func DomainOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
