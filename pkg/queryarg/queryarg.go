// Package queryarg builds and edits admin URLs one query parameter at a time.
package queryarg

import (
	"net/url"
	"strings"
)

// AdminURL joins an admin base URL (absolute or path-only) with a relative
// admin path such as "admin.php?page=slug".
func AdminURL(base, path string) string {
	if base == "" {
		base = "/"
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Add returns rawURL with key set to value, replacing any existing values.
// Other parameters are kept. rawURL may be relative.
func Add(rawURL, key, value string) (string, error) {
	return edit(rawURL, func(q url.Values) { q.Set(key, value) })
}

// Remove returns rawURL without key. Other parameters are kept.
func Remove(rawURL, key string) (string, error) {
	return edit(rawURL, func(q url.Values) { q.Del(key) })
}

func edit(rawURL string, fn func(url.Values)) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	fn(q)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
