package rrule

import "time"

// CivilTime is a year-month-day-hour-minute-second tuple with no time zone
// attached, ordered lexicographically. It is the representation the
// expansion engine works in internally; a zone is bound only once, at the
// boundary where occurrences are handed back to a caller.
type CivilTime struct {
	Year  int
	Month time.Month
	Day   int
	Hour  int
	Min   int
	Sec   int
}

// CivilTimeFromTime extracts the civil fields of t, discarding its location.
func CivilTimeFromTime(t time.Time) CivilTime {
	return CivilTime{
		Year:  t.Year(),
		Month: t.Month(),
		Day:   t.Day(),
		Hour:  t.Hour(),
		Min:   t.Minute(),
		Sec:   t.Second(),
	}
}

// Time renders c as a time.Time in the UTC location, the canonical
// zone-free representation used for civil arithmetic.
func (c CivilTime) Time() time.Time {
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Min, c.Sec, 0, time.UTC)
}

// In binds c to loc, resolving the local wall-clock time in that zone. See
// bindZone for how ambiguous and nonexistent local times are handled.
func (c CivilTime) In(loc *time.Location) time.Time {
	return bindZone(c.Year, c.Month, c.Day, c.Hour, c.Min, c.Sec, loc)
}

// IsValid reports whether the day exists in the given month and year, e.g.
// it is false for February 30th.
func (c CivilTime) IsValid() bool {
	return c.Day >= 1 && c.Day <= daysInMonth(c.Year, c.Month)
}

// Before reports whether c sorts strictly before o.
func (c CivilTime) Before(o CivilTime) bool {
	return c.Compare(o) < 0
}

// Compare returns -1, 0, or 1 as c is before, equal to, or after o.
func (c CivilTime) Compare(o CivilTime) int {
	switch {
	case c.Year != o.Year:
		return cmpInt(c.Year, o.Year)
	case c.Month != o.Month:
		return cmpInt(int(c.Month), int(o.Month))
	case c.Day != o.Day:
		return cmpInt(c.Day, o.Day)
	case c.Hour != o.Hour:
		return cmpInt(c.Hour, o.Hour)
	case c.Min != o.Min:
		return cmpInt(c.Min, o.Min)
	default:
		return cmpInt(c.Sec, o.Sec)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AddMonth advances t by n calendar months, then skips forward one month at
// a time until the day is valid in the resulting month. Adding one month to
// January 31st therefore lands on March 31st, skipping the invalid
// February 31st and the short February 28th/29th.
func AddMonth(t time.Time, n int) time.Time {
	day := t.Day()
	y := t.Year()
	total := int(t.Month()) - 1 + n
	y += total / 12
	mi := total % 12
	if mi < 0 {
		mi += 12
		y--
	}
	month := time.Month(mi + 1)

	for day > daysInMonth(y, month) {
		month++
		if month > 12 {
			month = 1
			y++
		}
	}

	return time.Date(y, month, day, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func daysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// nthDayOfMonth resolves a signed BYMONTHDAY ordinal against the given
// month. Positive n counts from the 1st; negative n counts from the last
// day of the month, so -1 is always the last day. ok is false if n is out
// of range for the month (e.g. n=31 in February).
func nthDayOfMonth(y int, m time.Month, n int) (day int, ok bool) {
	last := daysInMonth(y, m)
	if n > 0 {
		if n > last {
			return 0, false
		}
		return n, true
	}
	if n < 0 {
		d := last + n + 1
		if d < 1 {
			return 0, false
		}
		return d, true
	}
	return 0, false
}

// lastDayOfMonth returns the final civil day of month m in year y.
func lastDayOfMonth(y int, m time.Month) time.Time {
	return time.Date(y, m, daysInMonth(y, m), 0, 0, 0, 0, time.UTC)
}

func daysInYear(y int) int {
	if isLeapYear(y) {
		return 366
	}
	return 365
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// nthDayOfYear resolves a signed BYYEARDAY ordinal, returning the date and
// whether n is in range for the year.
func nthDayOfYear(y, n int) (time.Time, bool) {
	total := daysInYear(y)
	var yday int
	if n > 0 {
		yday = n
	} else if n < 0 {
		yday = total + n + 1
	} else {
		return time.Time{}, false
	}
	if yday < 1 || yday > total {
		return time.Time{}, false
	}
	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, yday-1), true
}

// isoWeeksInYear returns the number of ISO 8601 weeks in the given ISO
// week-year (52 or 53). December 28th always falls in the year's final ISO
// week, so its week number gives the answer directly.
func isoWeeksInYear(y int) int {
	_, week := time.Date(y, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// nthWeekByWeekNo resolves a signed BYWEEKNO ordinal to the Monday that
// begins that ISO week of ISO week-year y.
func nthWeekByWeekNo(y, w int) (time.Time, bool) {
	total := isoWeeksInYear(y)
	week := w
	if w < 0 {
		week = total + w + 1
	}
	if week < 1 || week > total {
		return time.Time{}, false
	}

	// Jan 4th always falls in ISO week 1 of its year.
	jan4 := time.Date(y, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7 // days since Monday
	week1Monday := jan4.AddDate(0, 0, -offset)
	return week1Monday.AddDate(0, 0, (week-1)*7), true
}

// allWeekdayOfMonth returns every occurrence of wd in month m of year y, in
// ascending order (between 1 and 5 dates).
func allWeekdayOfMonth(y int, m time.Month, wd time.Weekday) []time.Time {
	var out []time.Time
	d := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	for d.Month() == m {
		out = append(out, d)
		d = d.AddDate(0, 0, 7)
	}
	return out
}

// nthWeekdayOfMonth resolves a signed BYDAY ordinal (the "1" in "1FR") to a
// specific date within month m of year y.
func nthWeekdayOfMonth(y int, m time.Month, wd time.Weekday, n int) (time.Time, bool) {
	all := allWeekdayOfMonth(y, m, wd)
	if n > 0 {
		if n > len(all) {
			return time.Time{}, false
		}
		return all[n-1], true
	}
	if n < 0 {
		idx := len(all) + n
		if idx < 0 {
			return time.Time{}, false
		}
		return all[idx], true
	}
	return time.Time{}, false
}

// allWeekdayOfYear returns every occurrence of wd in year y, ascending.
func allWeekdayOfYear(y int, wd time.Weekday) []time.Time {
	var out []time.Time
	d := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	for d.Year() == y {
		out = append(out, d)
		d = d.AddDate(0, 0, 7)
	}
	return out
}

// nthWeekdayOfYear resolves a signed BYDAY ordinal against a whole year.
func nthWeekdayOfYear(y int, wd time.Weekday, n int) (time.Time, bool) {
	all := allWeekdayOfYear(y, wd)
	if n > 0 {
		if n > len(all) {
			return time.Time{}, false
		}
		return all[n-1], true
	}
	if n < 0 {
		idx := len(all) + n
		if idx < 0 {
			return time.Time{}, false
		}
		return all[idx], true
	}
	return time.Time{}, false
}

// isNthDayOfMonth reports whether t is the nth day (RFC ordinal) of its
// month.
func isNthDayOfMonth(t time.Time, n int) bool {
	day, ok := nthDayOfMonth(t.Year(), t.Month(), n)
	return ok && day == t.Day()
}

// isNthDayOfYear reports whether t is the nth day (RFC ordinal) of its
// year.
func isNthDayOfYear(t time.Time, n int) bool {
	d, ok := nthDayOfYear(t.Year(), n)
	return ok && d.Year() == t.Year() && d.Month() == t.Month() && d.Day() == t.Day()
}

// isInNthWeekNo reports whether t falls within ISO week w of its ISO
// week-year. Negative w counts back from the year's final ISO week.
func isInNthWeekNo(t time.Time, w int) bool {
	isoYear, isoWeek := t.ISOWeek()
	total := isoWeeksInYear(isoYear)
	want := w
	if w < 0 {
		want = total + w + 1
	}
	return want == isoWeek
}
