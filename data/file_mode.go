package data

// FileMode represents file mode and permission bits.
// It follows Unix file mode conventions with type and permission bits.
type FileMode uint32

const (
	// Type bits
	ModeDir       FileMode = 1 << 31 // d: directory
	ModeIrregular FileMode = 1 << 25 // ?: non-regular file

	// Permission bits
	ModePerm FileMode = 0777

	// Defaults used by backends that do not store permissions
	DefaultFileMode FileMode = 0644
	DefaultDirMode  FileMode = ModeDir | 0755
)

// IsDir reports whether m describes a directory.
func (m FileMode) IsDir() bool {
	return m&ModeDir != 0
}

// IsRegular reports whether m describes a regular file.
func (m FileMode) IsRegular() bool {
	return m&(ModeDir|ModeIrregular) == 0
}

// Perm returns the Unix permission bits in m.
func (m FileMode) Perm() FileMode {
	return m & ModePerm
}

// String returns a textual representation of the mode in Unix ls -l format.
// Example: "drwxr-xr-x" for a directory with 755 permissions.
func (m FileMode) String() string {
	var buf [10]byte

	switch {
	case m.IsDir():
		buf[0] = 'd'
	case m&ModeIrregular != 0:
		buf[0] = '?'
	default:
		buf[0] = '-'
	}

	const rwx = "rwxrwxrwx"
	for i, c := range rwx {
		if m&(1<<uint(9-1-i)) != 0 {
			buf[i+1] = byte(c)
		} else {
			buf[i+1] = '-'
		}
	}

	return string(buf[:])
}
