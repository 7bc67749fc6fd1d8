package convert

import (
	"strconv"
	"time"
)

// UnixMillis converts a time to milliseconds since the unix epoch
func UnixMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// UnixSecondsString returns t as fractional seconds since the unix epoch using
// the shortest representation that round trips, e.g. 1559881511.5
func UnixSecondsString(t time.Time) string {
	return FloatToString(float64(t.UnixNano()) / float64(time.Second))
}

// FloatToString formats a float without exponent and without trailing zeros
func FloatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// BoolPtr takes in boolean condition and returns pointer version of it
func BoolPtr(condition bool) *bool {
	b := condition
	return &b
}
