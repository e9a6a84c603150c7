package rules

import "os"

// Probe answers existence and type questions about filesystem paths.
// Implementations must not cache answers.
type Probe interface {
	// Exists reports whether path names a file or directory.
	Exists(path string) bool

	// IsDirectory reports whether path is a directory. Only meaningful when
	// Exists(path) is true.
	IsDirectory(path string) bool
}

// OSProbe queries the real filesystem. Any stat error, including permission
// errors, is treated as "does not exist".
type OSProbe struct{}

// Exists follows symlinks.
func (OSProbe) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory does not follow symlinks, so a symlink to a directory is not a directory.
func (OSProbe) IsDirectory(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
