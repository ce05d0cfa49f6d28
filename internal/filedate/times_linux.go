//go:build linux

package filedate

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes asks statx for the birth time; not every filesystem fills it in,
// in which case the earlier of ctime and mtime stands in.
func fileTimes(path string) (time.Time, time.Time, error) {
	var stx unix.Statx_t
	mask := uint32(unix.STATX_BTIME | unix.STATX_CTIME | unix.STATX_MTIME)
	if err := unix.Statx(unix.AT_FDCWD, path, 0, int(mask), &stx); err == nil {
		modified := time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec))
		if stx.Mask&unix.STATX_BTIME != 0 && (stx.Btime.Sec != 0 || stx.Btime.Nsec != 0) {
			return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), modified, nil
		}
		changed := time.Unix(stx.Ctime.Sec, int64(stx.Ctime.Nsec))
		return earlier(changed, modified), modified, nil
	}

	// Older kernels without statx.
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	modified := info.ModTime()
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		changed := time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
		return earlier(changed, modified), modified, nil
	}
	return modified, modified, nil
}
