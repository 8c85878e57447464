package internal

import "strings"

// PathEquals matches requests whose path is exactly the given value.
func PathEquals(path string) Predicate {
	return func(c Context) bool {
		return c.Path() == path
	}
}

// PathPrefix matches requests whose path starts with the given prefix on
// a whole segment boundary: "/use" matches "/use" and "/use/x" but not
// "/useother".
func PathPrefix(prefix string) Predicate {
	return func(c Context) bool {
		_, ok := trimPathPrefix(c.Path(), prefix)
		return ok
	}
}

// QueryFlag matches requests that carry the named query parameter,
// regardless of its value.
func QueryFlag(name string) Predicate {
	return func(c Context) bool {
		return c.QueryExists(name)
	}
}

// trimPathPrefix reports whether path starts with prefix on a segment
// boundary and returns the remaining suffix. The suffix always starts
// with "/" so nested prefix branches keep matching.
func trimPathPrefix(path, prefix string) (string, bool) {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return path, true
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	if rest != "" && rest[0] != '/' {
		return "", false
	}
	if rest == "" {
		rest = "/"
	}
	return rest, true
}
