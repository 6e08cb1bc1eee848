//go:build !linux && !darwin

package scan

import (
	"io/fs"
	"time"
)

// statTimes falls back to mtime on platforms without a portable stat shape.
func statTimes(info fs.FileInfo) (accessed, created time.Time) {
	return info.ModTime(), info.ModTime()
}
