package validate

import "net/url"

// IsValidURL reports whether candidate parses as an absolute URL with a
// recognized scheme and a host. Malformed input is a normal false result,
// never an error.
func IsValidURL(candidate string) bool {
	if candidate == "" {
		return false
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
