package rrule

import (
	"fmt"
	"time"
)

// bindZone attaches a civil time to loc. Ambiguous wall clocks created by a
// DST fall-back (one wall clock that occurs twice) resolve to the earlier of
// the two instants. time.Date alone does not guarantee which of the two it
// returns, so bindZone looks for an earlier instant with the same wall clock.
//
// A wall clock that a DST spring-forward skipped over never happened in
// loc; rather than silently let time.Date shift it forward into the
// following hour, bindZone panics.
func bindZone(y int, mo time.Month, d, h, mi, s int, loc *time.Location) time.Time {
	t := time.Date(y, mo, d, h, mi, s, 0, loc)
	if ry, rmo, rd := t.Date(); ry != y || rmo != mo || rd != d || t.Hour() != h || t.Minute() != mi || t.Second() != s {
		panic(fmt.Sprintf("nonexistent local time %04d-%02d-%02dT%02d:%02d:%02d in %s", y, mo, d, h, mi, s, loc))
	}
	_, off := t.Zone()
	if _, prevOff := t.Add(-24 * time.Hour).Zone(); prevOff > off {
		e := t.Add(-time.Duration(prevOff-off) * time.Second)
		if _, eOff := e.Zone(); eOff == prevOff && e.Hour() == h && e.Minute() == mi && e.Second() == s {
			t = e
		}
	}
	return t
}
