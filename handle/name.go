package handle

import (
	"strings"

	"github.com/mwantia/photofs/data"
)

// ValidateName rejects entry names that cannot name a single child of a directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return data.InvalidName(name, "must not be empty")
	}

	if name == "." || name == ".." {
		return data.InvalidName(name, "is reserved")
	}

	if strings.ContainsAny(name, "/\x00") {
		return data.InvalidName(name, "must not contain '/' or NUL")
	}

	return nil
}
