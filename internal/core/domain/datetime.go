package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	localDateTimeLayout        = "2006-01-02T15:04"
	localDateTimeLayoutSeconds = "2006-01-02T15:04:05"
)

// LocalDateTime is the wire representation of a local date-time without a
// zone, formatted as yyyy-MM-ddTHH:mm (seconds accepted on input).
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime truncates t to minute precision, matching the wire format.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{t.Truncate(time.Minute)}
}

func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(localDateTimeLayout) + `"`), nil
}

func (d *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{localDateTimeLayoutSeconds, localDateTimeLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date format %q, use yyyy-MM-ddTHH:mm (e.g. 2025-10-16T14:30)", s)
}

func (d LocalDateTime) String() string {
	return d.Format(localDateTimeLayout)
}
