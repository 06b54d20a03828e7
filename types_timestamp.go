package coinledger

import "time"

// SecondsPerDay is the length of a UTC day bucket.
const SecondsPerDay = 24 * 60 * 60

// Timestamp is a unix timestamp in seconds. It is the canonical unit for
// cross-source comparison: trades are stored in seconds, history events in
// milliseconds, and every comparison happens after conversion to seconds.
type Timestamp int64

// TimestampMS is a unix timestamp in milliseconds, the native unit of
// history events.
type TimestampMS int64

// Now returns the current time as a second-precision Timestamp.
func Now() Timestamp { return Timestamp(time.Now().Unix()) }

// ToMS converts a second timestamp to milliseconds.
func (t Timestamp) ToMS() TimestampMS { return TimestampMS(t) * 1000 }

// DayStart truncates the timestamp to the start of its UTC day.
func (t Timestamp) DayStart() Timestamp { return t - t%SecondsPerDay }

// Time returns the timestamp as a time.Time in UTC.
func (t Timestamp) Time() time.Time { return time.Unix(int64(t), 0).UTC() }

// ToSec converts a millisecond timestamp to seconds, truncating towards zero.
// Truncation (not rounding) keeps the conversion consistent with the
// coarser-unit rule: an event at 1500ms happened within second 1.
func (m TimestampMS) ToSec() Timestamp { return Timestamp(m / 1000) }
