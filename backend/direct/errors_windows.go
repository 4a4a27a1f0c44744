//go:build windows

package direct

import (
	"errors"
	"syscall"
)

func isNotDirectory(err error) bool {
	return errors.Is(err, syscall.ERROR_PATH_NOT_FOUND)
}
