package rrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QualifiedWeekday pairs a weekday with an optional ordinal within the
// containing period. N == 0 means "every occurrence of this weekday in the
// period"; a nonzero N selects the Nth occurrence (or the Nth from the end,
// when negative).
type QualifiedWeekday struct {
	N  int
	WD time.Weekday
}

var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

var codeWeekdays = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

// String renders the weekday using the RFC 5545 BYDAY form, e.g. "1FR" or
// "-17MO". A zero N is rendered without an ordinal.
func (q QualifiedWeekday) String() string {
	code, ok := weekdayCodes[q.WD]
	if !ok {
		panic(fmt.Sprintf("invalid weekday %v", q.WD))
	}
	if q.N == 0 {
		return code
	}
	return fmt.Sprintf("%d%s", q.N, code)
}

// IsEvery reports whether q selects every occurrence of its weekday in the
// containing period, as opposed to a single ordinal occurrence.
func (q QualifiedWeekday) IsEvery() bool {
	return q.N == 0
}

// ParseQualifiedWeekday parses a single BYDAY term such as "TU", "1FR", or
// "-17MO". The weekday code is always the trailing two characters.
func ParseQualifiedWeekday(s string) (QualifiedWeekday, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return QualifiedWeekday{}, fmt.Errorf("invalid weekday term %q", s)
	}
	code := strings.ToUpper(s[len(s)-2:])
	wd, ok := codeWeekdays[code]
	if !ok {
		return QualifiedWeekday{}, fmt.Errorf("invalid weekday code %q", code)
	}

	n := 0
	if rest := s[:len(s)-2]; rest != "" {
		v, err := strconv.Atoi(rest)
		if err != nil {
			return QualifiedWeekday{}, fmt.Errorf("invalid weekday ordinal %q", rest)
		}
		n = v
	}

	return QualifiedWeekday{N: n, WD: wd}, nil
}

// parseWeekdayList parses a comma-separated BYDAY/BYWEEKDAY value.
func parseWeekdayList(s string) ([]QualifiedWeekday, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]QualifiedWeekday, 0, len(parts))
	for _, p := range parts {
		qw, err := ParseQualifiedWeekday(p)
		if err != nil {
			return nil, err
		}
		out = append(out, qw)
	}
	return out, nil
}

// plainWeekdays strips ordinals, returning the bare set of weekdays referenced.
func plainWeekdays(wds []QualifiedWeekday) []time.Weekday {
	out := make([]time.Weekday, len(wds))
	for i, wd := range wds {
		out[i] = wd.WD
	}
	return out
}

// hasMixedOrdinals reports whether wds mixes "every occurrence" terms with
// "Nth occurrence" terms. RFC 5545 permits this but this engine treats the
// combination as ambiguous and refuses to guess.
func hasMixedOrdinals(wds []QualifiedWeekday) bool {
	sawEvery, sawNth := false, false
	for _, wd := range wds {
		if wd.IsEvery() {
			sawEvery = true
		} else {
			sawNth = true
		}
	}
	return sawEvery && sawNth
}
