package blob

import (
	"context"
	"sync"

	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/handle"
)

// Cache memoizes one URL per file reference for the lifetime of a view.
// Close must run when the view is torn down.
type Cache struct {
	mu     sync.Mutex
	closed bool
	store  *Store
	urls   map[*handle.File]string
}

func NewCache(store *Store) *Cache {
	return &Cache{
		store: store,
		urls:  make(map[*handle.File]string),
	}
}

// URLFor returns the URL of file, reading its content on first access.
// It fails with data.ErrClosed once the cache is closed.
func (c *Cache) URLFor(ctx context.Context, file *handle.File) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", data.ErrClosed
	}

	if url, exists := c.urls[file]; exists {
		return url, nil
	}

	content, err := file.ReadAll(ctx)
	if err != nil {
		return "", err
	}

	url := c.store.Create(file.MediaType(), content)
	c.urls[file] = url

	return url, nil
}

// ReleaseAll revokes every URL created by this cache and empties it.
// It returns the number of released URLs. The cache stays usable.
func (c *Cache) ReleaseAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.release()
}

// Close releases every URL and refuses later URLFor calls.
func (c *Cache) Close() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return c.release()
}

func (c *Cache) release() int {
	released := 0
	for file, url := range c.urls {
		if c.store.Revoke(url) {
			released++
		}
		delete(c.urls, file)
	}

	return released
}

// Len returns the number of cached URLs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.urls)
}
