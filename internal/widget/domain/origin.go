package domain

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// OriginOf returns the serialized origin (scheme://host[:port]) of an http or
// https URL, the way browsers compute it: scheme and host lower-cased, the
// default port dropped, path, query, fragment and user info discarded.
// Any other input yields "".
func OriginOf(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}

	port := u.Port()
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 0 || n > 65535 {
			return ""
		}
		port = strconv.Itoa(n)
		if (scheme == "http" && n == 80) || (scheme == "https" && n == 443) {
			port = ""
		}
	}

	switch {
	case port != "":
		host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		host = "[" + host + "]"
	}
	return scheme + "://" + host
}

// IsOrigin reports whether s is already a serialized origin, i.e. OriginOf
// would return it unchanged. Allow-list entries must satisfy this so that
// exact matching against referer-derived origins can succeed.
func IsOrigin(s string) bool {
	return s != "" && OriginOf(s) == s
}
