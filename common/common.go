package common

import (
	"errors"
	"fmt"
	"time"
)

// Shared errors
var (
	ErrStartAfterEnd = errors.New("start cannot be after end")
	ErrNilPointer    = errors.New("nil pointer")
	ErrDateUnset     = errors.New("date unset")
)

// StartEndTimeCheck checks an optional time window. Either bound may be left
// zero; when both are set start must not be after end.
func StartEndTimeCheck(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if start.After(end) {
		return fmt.Errorf("%w: %s > %s", ErrStartAfterEnd, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	}
	return nil
}

// StrictStartEndTimeCheck is StartEndTimeCheck with both bounds required
func StrictStartEndTimeCheck(start, end time.Time) error {
	if start.IsZero() {
		return fmt.Errorf("start %w", ErrDateUnset)
	}
	if end.IsZero() {
		return fmt.Errorf("end %w", ErrDateUnset)
	}
	return StartEndTimeCheck(start, end)
}
