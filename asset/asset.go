// Package asset allocates sequential file names for captured photos and writes them.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mwantia/photofs/data"
	"github.com/mwantia/photofs/handle"
	"github.com/mwantia/photofs/slug"
)

// DefaultExtension is used when the source name carries no usable extension.
const DefaultExtension = "jpg"

var extensionPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// NextIndex returns one more than the highest index among files named
// "<base>-<n>.<ext>" in dir, or 1 when there are none. Every file is
// considered, regardless of its media type.
func NextIndex(ctx context.Context, dir *handle.Directory, base string) (int, error) {
	entries, err := dir.Entries(ctx)
	if err != nil {
		return 0, err
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-(\d+)\.[a-zA-Z0-9]+$`)

	highest := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		match := pattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}

		index, err := strconv.Atoi(match[1])
		if err != nil {
			// Too many digits for an int; cannot be exceeded anyway
			continue
		}
		highest = max(highest, index)
	}

	if highest == math.MaxInt {
		return 0, fmt.Errorf("%w: index of '%s' cannot exceed %d", data.ErrInvalid, base, highest)
	}

	return highest + 1, nil
}

// Extension returns the extension of sourceName without the dot, or
// DefaultExtension when it is missing or not plain ASCII letters and digits.
func Extension(sourceName string) string {
	ext := strings.TrimPrefix(path.Ext(sourceName), ".")
	if !extensionPattern.MatchString(ext) {
		return DefaultExtension
	}

	return ext
}

// FileName formats the name of a captured asset.
func FileName(base string, index int, ext string) string {
	return fmt.Sprintf("%s-%d.%s", base, index, ext)
}

// Save writes content as the next asset of dir. The base name is the slug
// of the directory name and the extension is taken from sourceName.
// Concurrent saves into one directory may allocate the same index; the
// loser fails with data.ErrExist on backends with exclusive creation.
func Save(ctx context.Context, dir *handle.Directory, sourceName string, content []byte) (*handle.File, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty asset", data.ErrInvalid)
	}

	if capabilities := dir.Capabilities(); !capabilities.Accepts(int64(len(content))) {
		return nil, data.TooLarge(int64(len(content)), capabilities.MaxObjectSize)
	}

	detected := mimetype.Detect(content)
	if !data.IsImage(detected.String()) {
		return nil, fmt.Errorf("%w: asset is '%s', not an image", data.ErrInvalid, detected.String())
	}

	base := slug.Slugify(dir.Name())
	if base == "" {
		base = "photo"
	}

	index, err := NextIndex(ctx, dir, base)
	if err != nil {
		return nil, err
	}

	return dir.CreateFile(ctx, FileName(base, index, Extension(sourceName)), bytes.NewReader(content))
}
