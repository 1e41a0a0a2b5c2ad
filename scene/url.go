package scene

import "strings"

// joinURL concatenates base and path with exactly one slash between them.
// When either side is empty the two are concatenated unchanged.
func joinURL(base, path string) string {
	if base == "" || path == "" {
		return base + path
	}
	baseSlash := strings.HasSuffix(base, "/")
	pathSlash := strings.HasPrefix(path, "/")
	switch {
	case baseSlash && pathSlash:
		return base + path[1:]
	case !baseSlash && !pathSlash:
		return base + "/" + path
	default:
		return base + path
	}
}
