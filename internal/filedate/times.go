package filedate

import "time"

// FileTimes returns the creation and modification timestamps for path.
// Creation time prefers the platform birth time where the filesystem exposes
// one and otherwise approximates with the earlier of change time and
// modification time.
func FileTimes(path string) (created, modified time.Time, err error) {
	return fileTimes(path)
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
