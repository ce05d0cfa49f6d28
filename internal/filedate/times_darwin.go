//go:build darwin

package filedate

import (
	"os"
	"syscall"
	"time"
)

// fileTimes uses the APFS/HFS+ birth time reported by stat.
func fileTimes(path string) (time.Time, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	modified := info.ModTime()
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created := time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
		return created, modified, nil
	}
	return modified, modified, nil
}
