package dedupe

import (
	"net/url"
	"strings"
)

// trackingParams are stripped during normalization so that share links
// with campaign junk collapse onto the canonical URL.
var trackingParams = map[string]struct{}{
	"fbclid": {},
	"gclid":  {},
	"ref":    {},
}

// NormalizeURL returns the canonical form used for duplicate keys and
// probe deduplication:
//   - scheme and host lowercased
//   - default ports dropped
//   - fragment dropped
//   - utm_* and known tracking parameters dropped, the rest re-encoded
//     in sorted key order
//   - trailing slash normalized (bare host and "/" are the same key)
//
// Unparseable input is returned as-is; it still forms a stable key.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Fragment = ""

	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" && !isDefaultPort(u.Scheme, port) {
		u.Host = host + ":" + port
	} else {
		u.Host = host
	}

	if q := u.Query(); len(q) > 0 {
		for k := range q {
			if _, drop := trackingParams[k]; drop || strings.HasPrefix(strings.ToLower(k), "utm_") {
				q.Del(k)
			}
		}
		u.RawQuery = q.Encode()
	}

	switch {
	case u.Path == "":
		u.Path = "/"
	case len(u.Path) > 1:
		u.Path = strings.TrimRight(u.Path, "/")
		if u.Path == "" {
			u.Path = "/"
		}
	}

	return u.String()
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}
