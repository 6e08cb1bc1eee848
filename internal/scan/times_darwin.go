package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// statTimes returns access and birth times from the underlying stat.
func statTimes(info fs.FileInfo) (accessed, created time.Time) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		accessed = time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
		created = time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
		return accessed, created
	}
	return info.ModTime(), info.ModTime()
}
