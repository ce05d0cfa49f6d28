package filedate

import (
	"log/slog"
	"time"

	"mediasort/internal/logging"
)

// DefaultCutoffHour is the local hour before which January 1st files are
// attributed to the previous year's New Year's Eve activity.
const DefaultCutoffHour = 14

// Source identifies where a resolved year came from.
type Source int

const (
	// SourceFilename means a date pattern in the filename decided the year.
	SourceFilename Source = iota
	// SourceCreationTime means the filesystem creation timestamp decided the
	// year because no filename pattern matched.
	SourceCreationTime
)

// Resolution is the outcome of resolving a file's target year. Creation is
// only populated when the filesystem was consulted (January 1st adjustment
// or full fallback).
type Resolution struct {
	Year     int
	Source   Source
	Creation time.Time
}

// Resolver turns a file path into exactly one target year.
type Resolver struct {
	cutoffHour int
	times      func(string) (time.Time, time.Time, error)
	logger     *slog.Logger
}

// NewResolver constructs a resolver with the given cutoff hour. A non
// positive hour selects the default.
func NewResolver(cutoffHour int, logger *slog.Logger) *Resolver {
	if cutoffHour <= 0 {
		cutoffHour = DefaultCutoffHour
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		cutoffHour: cutoffHour,
		times:      fileTimes,
		logger:     logging.NewComponentLogger(logger, "filedate"),
	}
}

// NewResolverWithTimes injects the timestamp source (used in tests).
func NewResolverWithTimes(cutoffHour int, logger *slog.Logger, times func(string) (time.Time, time.Time, error)) *Resolver {
	r := NewResolver(cutoffHour, logger)
	if times != nil {
		r.times = times
	}
	return r
}

// Resolve derives the target year for path. A filename date wins when
// present; otherwise the creation timestamp decides. Both paths apply the
// New Year cutoff rule for January 1st.
func (r *Resolver) Resolve(path, filename string) (Resolution, error) {
	if date, ok := ExtractDate(filename); ok {
		res := Resolution{Year: date.Year, Source: SourceFilename}
		if date.Month == 1 && date.Day == 1 {
			created, _, err := r.times(path)
			if err != nil {
				return Resolution{}, err
			}
			res.Creation = created
			if created.Hour() < r.cutoffHour {
				res.Year--
			}
		}
		r.logger.Debug("resolved year from filename",
			logging.String("file", filename),
			logging.Int("year", res.Year))
		return res, nil
	}

	created, _, err := r.times(path)
	if err != nil {
		return Resolution{}, err
	}
	year := created.Year()
	if created.Month() == time.January && created.Day() == 1 && created.Hour() < r.cutoffHour {
		year--
	}
	r.logger.Debug("resolved year from creation time",
		logging.String("file", filename),
		logging.Int("year", year))
	return Resolution{Year: year, Source: SourceCreationTime, Creation: created}, nil
}
