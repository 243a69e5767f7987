package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL checks that raw is an absolute http or https URL with a host
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	case u.Host == "":
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return nil
}

// ResolveURL makes a listing href absolute against base. Hrefs that are
// already absolute, or that cannot be parsed, come back trimmed and otherwise
// as they were.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)

	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
