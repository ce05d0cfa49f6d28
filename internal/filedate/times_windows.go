//go:build windows

package filedate

import (
	"os"
	"syscall"
	"time"
)

// fileTimes reads the NTFS creation time from the Win32 file attributes.
func fileTimes(path string) (time.Time, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	modified := info.ModTime()
	if attrs, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		created := time.Unix(0, attrs.CreationTime.Nanoseconds())
		return created, modified, nil
	}
	return modified, modified, nil
}
