package rrule

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the text-parsing entry points. Use
// errors.Is against these to distinguish failure classes without parsing
// the message.
var (
	// ErrMalformedDtstart is returned when a DTSTART, UNTIL, or window
	// bound timestamp cannot be parsed.
	ErrMalformedDtstart = errors.New("malformed civil timestamp")
	// ErrUnknownZone is returned when a TZID or SetTZ zone name cannot be
	// resolved by the tzdata database.
	ErrUnknownZone = errors.New("unknown time zone")
	// ErrUnknownFrequency is returned when a FREQ token is not one of the
	// seven RFC 5545 values.
	ErrUnknownFrequency = errors.New("unknown frequency")
)

func wrapErr(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}
