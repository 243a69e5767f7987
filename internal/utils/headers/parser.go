package headers

import (
	"fmt"
	"net/http"
	"strings"
)

// ParseHeaders converts an array of header strings ("Key: Value") into a map
// keyed by canonical header name. Entries without a colon or name are rejected.
func ParseHeaders(h []string) (map[string]string, error) {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("invalid header %q: expected \"Name: value\"", hdr)
		}
		m[http.CanonicalHeaderKey(key)] = strings.TrimSpace(value)
	}
	return m, nil
}
