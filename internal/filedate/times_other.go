//go:build !linux && !darwin && !windows

package filedate

import (
	"os"
	"time"
)

func fileTimes(path string) (time.Time, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return info.ModTime(), info.ModTime(), nil
}
