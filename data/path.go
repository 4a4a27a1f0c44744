package data

import (
	"path"
	"strings"
)

// JoinKey appends name to the parent key. The root is the empty key.
func JoinKey(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// ParentKey returns the key of the containing directory, "" for top-level keys.
func ParentKey(key string) string {
	dir := path.Dir(key)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// CleanKey normalizes a key: no leading or trailing slashes, no "." elements.
func CleanKey(key string) string {
	key = path.Clean("/" + key)
	return strings.TrimPrefix(key, "/")
}

// IsChildKey reports whether key is an immediate child of parent.
func IsChildKey(parent, key string) bool {
	if key == "" || key == parent {
		return false
	}

	rest := key
	if parent != "" {
		if !strings.HasPrefix(key, parent+"/") {
			return false
		}
		rest = key[len(parent)+1:]
	}

	return rest != "" && !strings.Contains(rest, "/")
}
