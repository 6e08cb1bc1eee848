package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// statTimes returns access and creation (status change) times from the
// underlying stat. Linux exposes ctime, not birth time; it is the closest
// portable analogue.
func statTimes(info fs.FileInfo) (accessed, created time.Time) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		accessed = time.Unix(st.Atim.Sec, st.Atim.Nsec)
		created = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
		return accessed, created
	}
	return info.ModTime(), info.ModTime()
}
