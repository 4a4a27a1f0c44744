// Package blob hands out displayable URLs for file content and tracks their release.
package blob

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Object is the content behind a displayable URL.
type Object struct {
	ContentType string
	Content     []byte
}

// Store is a registry of displayable URLs of the form "blob:<prefix>/<uuid>".
// Every created URL stays resolvable until it is revoked.
type Store struct {
	mu      sync.RWMutex
	prefix  string
	objects map[string]*Object
}

func NewStore(prefix string) *Store {
	return &Store{
		prefix:  strings.TrimSuffix(prefix, "/"),
		objects: make(map[string]*Object),
	}
}

// Create registers content and returns a new URL for it.
func (s *Store) Create(contentType string, content []byte) string {
	url := "blob:" + s.prefix + "/" + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[url] = &Object{
		ContentType: contentType,
		Content:     content,
	}

	return url
}

// Revoke releases a URL. It reports whether the URL was still registered.
func (s *Store) Revoke(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[url]; !exists {
		return false
	}

	delete(s.objects, url)
	return true
}

// Lookup returns the content behind a URL that has not been revoked.
func (s *Store) Lookup(url string) (*Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	object, exists := s.objects[url]
	return object, exists
}

// Len returns the number of live URLs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}
