package navigator

import (
	"context"

	"github.com/mwantia/photofs/handle"
	"github.com/mwantia/photofs/slug"
)

// Resolver walks slug segments from a root directory, one level per segment.
type Resolver struct {
	enumerator *Enumerator
}

func NewResolver(enumerator *Enumerator) *Resolver {
	return &Resolver{
		enumerator: enumerator,
	}
}

// Resolve returns the directory addressed by segments, or false when any
// segment has no matching child. It never creates or modifies directories.
func (r *Resolver) Resolve(ctx context.Context, root *handle.Directory, segments []string) (*handle.Directory, bool) {
	current := root
	for i, segment := range segments {
		listing := r.enumerator.List(ctx, current)

		next, ok := slug.Match(listing.Directories, segment)
		if !ok {
			r.enumerator.log.Debug("No directory for segment '%s' at depth %d", segment, i)
			return nil, false
		}

		current = next
	}

	return current, true
}
