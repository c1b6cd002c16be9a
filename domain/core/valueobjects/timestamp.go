package valueobjects

import (
	"time"
)

// All document timestamps are rendered in a fixed +05:30 offset,
// never Z. Comparisons assume the same convention.
var istZone = time.FixedZone("IST", 5*3600+30*60)

const stampLayout = "2006-01-02T15:04:05.000-07:00"

// Clock abstracts the wall clock so stamping is testable
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production clock
var SystemClock Clock = systemClock{}

// Stamper produces canonical document timestamps
type Stamper struct {
	clock Clock
}

// NewStamper creates a Stamper; a nil clock falls back to SystemClock
func NewStamper(clock Clock) Stamper {
	if clock == nil {
		clock = SystemClock
	}
	return Stamper{clock: clock}
}

// Stamp renders the current instant as YYYY-MM-DDTHH:mm:ss.sss+05:30
func (s Stamper) Stamp() string {
	return s.clock.Now().In(istZone).Format(stampLayout)
}

// EditTime is a parsed provenance timestamp. Absent or malformed raw
// values parse to the epoch, which sorts before any well-formed stamp.
type EditTime struct {
	t time.Time
}

var epoch = time.Unix(0, 0).UTC()

// ParseEditTime parses a raw timestamp string
func ParseEditTime(raw string) EditTime {
	if raw == "" {
		return EditTime{t: epoch}
	}
	for _, layout := range []string{stampLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return EditTime{t: t}
		}
	}
	return EditTime{t: epoch}
}

// ParseEditTimePtr parses an optional timestamp; nil is the epoch
func ParseEditTimePtr(raw *string) EditTime {
	if raw == nil {
		return EditTime{t: epoch}
	}
	return ParseEditTime(*raw)
}

// After reports whether e is strictly later than other
func (e EditTime) After(other EditTime) bool {
	return e.t.After(other.t)
}

// Before reports whether e is strictly earlier than other
func (e EditTime) Before(other EditTime) bool {
	return e.t.Before(other.t)
}

// Equal reports whether the two instants coincide
func (e EditTime) Equal(other EditTime) bool {
	return e.t.Equal(other.t)
}

// Time returns the underlying instant
func (e EditTime) Time() time.Time {
	return e.t
}

// IsEpoch reports whether the raw value was absent or unparseable
func (e EditTime) IsEpoch() bool {
	return e.t.Equal(epoch)
}
