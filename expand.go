package rrule

import (
	"sort"
	"time"
)

// The expand* functions turn one candidate civil time into a slice of
// candidate civil times by substituting or projecting a field (seconds,
// weekdays, week numbers, ...). An empty rule part is a no-op: the input
// slice passes through unchanged.

func expandBySeconds(tt []time.Time, seconds ...int) []time.Time {
	if len(seconds) == 0 {
		return tt
	}
	want := normalizeMod(seconds, 60)
	out := make([]time.Time, 0, len(tt)*len(want))
	for _, t := range tt {
		for _, s := range want {
			out = append(out, time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), s, 0, time.UTC))
		}
	}
	return out
}

func expandByMinutes(tt []time.Time, minutes ...int) []time.Time {
	if len(minutes) == 0 {
		return tt
	}
	want := normalizeMod(minutes, 60)
	out := make([]time.Time, 0, len(tt)*len(want))
	for _, t := range tt {
		for _, m := range want {
			out = append(out, time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), m, t.Second(), 0, time.UTC))
		}
	}
	return out
}

func expandByHours(tt []time.Time, hours ...int) []time.Time {
	if len(hours) == 0 {
		return tt
	}
	want := normalizeMod(hours, 24)
	out := make([]time.Time, 0, len(tt)*len(want))
	for _, t := range tt {
		for _, h := range want {
			out = append(out, time.Date(t.Year(), t.Month(), t.Day(), h, t.Minute(), t.Second(), 0, time.UTC))
		}
	}
	return out
}

// expandYearByMonthDays resolves by_month_day against every month permitted
// by months (or all twelve, when months is empty), per spec.md §4.2.4's
// "for each month permitted by BYMONTH ... resolve the n-th day of that
// month" — the target month is never just the candidate's own month, so
// this also stands in for the BYMONTH filter
// when BYMONTHDAY is present: a day ordinal that doesn't exist in one of
// the permitted months (e.g. BYMONTHDAY=-1;BYMONTH=2,4 resolving the last
// day of February vs. April) is resolved independently per month instead
// of being carried over from whichever month the candidate started in.
func expandYearByMonthDays(tt []time.Time, months []time.Month, days []int) []time.Time {
	if len(days) == 0 {
		return tt
	}
	targets := months
	if len(targets) == 0 {
		targets = allMonths
	}
	var out []time.Time
	for _, t := range tt {
		for _, m := range targets {
			for _, n := range days {
				day, ok := nthDayOfMonth(t.Year(), m, n)
				if !ok {
					continue
				}
				out = append(out, time.Date(t.Year(), m, day, t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
			}
		}
	}
	return out
}

var allMonths = []time.Month{
	time.January, time.February, time.March, time.April, time.May, time.June,
	time.July, time.August, time.September, time.October, time.November, time.December,
}

// expandByYearDays projects each candidate onto the listed days of its own
// year, honoring invalid for ordinals that overflow a common year (e.g.
// BYYEARDAY=366).
func expandByYearDays(tt []time.Time, invalid InvalidBehavior, days ...int) []time.Time {
	if len(days) == 0 {
		return tt
	}
	var out []time.Time
	for _, t := range tt {
		y := t.Year()
		total := daysInYear(y)
		for _, n := range days {
			var date time.Time
			switch {
			case n > 0:
				if n > total {
					switch invalid {
					case PrevInvalid:
						n = total
					case NextInvalid:
						// date below overflows into the following year.
					default:
						continue
					}
				}
				date = time.Date(y, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC).AddDate(0, 0, n-1)
			case n < 0:
				if -n > total {
					switch invalid {
					case PrevInvalid:
						n = -total
					case NextInvalid:
						// date below overflows across the year boundary.
					default:
						continue
					}
				}
				date = time.Date(y, time.December, 31, t.Hour(), t.Minute(), t.Second(), 0, time.UTC).AddDate(0, 0, n+1)
			default:
				continue
			}
			out = append(out, date)
		}
	}
	return out
}

// expandByMonths projects each candidate onto the listed months, preserving
// day-of-month and honoring invalid when that day doesn't exist in the
// target month.
func expandByMonths(tt []time.Time, invalid InvalidBehavior, months ...time.Month) []time.Time {
	if len(months) == 0 {
		return tt
	}
	var out []time.Time
	for _, t := range tt {
		for _, m := range months {
			day := t.Day()
			dim := daysInMonth(t.Year(), m)
			if day > dim {
				switch invalid {
				case NextInvalid:
					out = append(out, time.Date(t.Year(), m, dim, t.Hour(), t.Minute(), t.Second(), 0, time.UTC).AddDate(0, 0, 1))
					continue
				case PrevInvalid:
					day = dim
				default:
					continue
				}
			}
			out = append(out, time.Date(t.Year(), m, day, t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
		}
	}
	return out
}

// expandMonthByWeekdays expands each candidate's month into the weekdays
// named by wds, narrowed per month by setpos when setpos is non-empty. Its
// caller is the yearly expander (BYMONTH with BYDAY), which passes a nil
// setpos and applies BYSETPOS across the whole year afterwards; the monthly
// expander builds its months through monthDayCandidates instead.
func expandMonthByWeekdays(tt []time.Time, invalid InvalidBehavior, setpos []int, wds ...QualifiedWeekday) []time.Time {
	if len(wds) == 0 {
		return tt
	}
	if hasMixedOrdinals(wds) {
		return nil
	}

	var out []time.Time
	for _, t := range tt {
		var month []time.Time
		for _, wd := range wds {
			if wd.IsEvery() {
				month = append(month, allWeekdayOfMonth(t.Year(), t.Month(), wd.WD)...)
			} else if d, ok := nthWeekdayOfMonth(t.Year(), t.Month(), wd.WD, wd.N); ok {
				month = append(month, d)
			}
		}
		sort.Slice(month, func(i, j int) bool { return month[i].Before(month[j]) })
		month = limitBySetPos(month, setpos)
		for _, d := range month {
			out = append(out, time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
		}
	}
	return out
}

// expandByWeekNumbers expands each candidate's ISO week-year into the
// listed ISO weeks, narrowed to plainByDay's weekdays (or all seven days of
// the week when plainByDay is empty). ISO weeks are always Monday-anchored
// regardless of WKST, so weekStart is accepted but unused.
func expandByWeekNumbers(tt []time.Time, invalid InvalidBehavior, weekStart time.Weekday, plainByDay []time.Weekday, weekNos ...int) []time.Time {
	if len(weekNos) == 0 {
		return tt
	}
	var out []time.Time
	for _, t := range tt {
		for _, w := range weekNos {
			monday, ok := nthWeekByWeekNo(t.Year(), w)
			if !ok {
				continue
			}
			for i := 0; i < 7; i++ {
				d := monday.AddDate(0, 0, i)
				if len(plainByDay) == 0 {
					out = append(out, time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
					continue
				}
				for _, wd := range plainByDay {
					if d.Weekday() == wd {
						out = append(out, time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
					}
				}
			}
		}
	}
	return out
}

// expandYearByWeekdays expands each candidate's year into the weekdays
// named by wds, used when BYDAY appears with no BYMONTH/BYWEEKNO context.
func expandYearByWeekdays(tt []time.Time, invalid InvalidBehavior, wds ...QualifiedWeekday) []time.Time {
	if len(wds) == 0 {
		return tt
	}
	if hasMixedOrdinals(wds) {
		return nil
	}

	var out []time.Time
	for _, t := range tt {
		for _, wd := range wds {
			if wd.IsEvery() {
				for _, d := range allWeekdayOfYear(t.Year(), wd.WD) {
					out = append(out, time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
				}
			} else if d, ok := nthWeekdayOfYear(t.Year(), wd.WD, wd.N); ok {
				out = append(out, time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// expandByWeekdays projects each weekly anchor onto the weekdays named by
// wds within its calendar week (bounded by weekStart); an empty wds leaves
// the anchor's own weekday untouched.
func expandByWeekdays(tt []time.Time, weekStart time.Weekday, wds ...QualifiedWeekday) []time.Time {
	plain := plainWeekdays(wds)
	if len(plain) == 0 {
		return tt
	}

	var out []time.Time
	for _, t := range tt {
		offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
		weekBegin := t.AddDate(0, 0, -offset)
		for i := 0; i < 7; i++ {
			d := weekBegin.AddDate(0, 0, i)
			for _, wd := range plain {
				if d.Weekday() == wd {
					out = append(out, time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// monthDayCandidates builds the compound-mode candidate set for one month
// anchor, per spec.md §4.2.3's five-step order: BYMONTH gates the month
// outright, BYYEARDAY (clipped to this month) seeds the set if present,
// BYMONTHDAY and BYWEEKNO each intersect (or seed, if the set is still
// empty) in turn, and BYDAY does the same last. A step whose own
// requested values yield nothing for this month empties the whole month
// rather than falling back to an earlier step's candidates. Returns (nil,
// true) when nothing in this month survives, and (nil, false) when none
// of the compound-mode filters (BYMONTHDAY/BYYEARDAY/BYWEEKNO/BYDAY) were
// requested at all, signaling the caller to fall back to simple mode.
func monthDayCandidates(y int, m time.Month, rrule RRule) (days []int, active bool) {
	if len(rrule.ByMonthDays) == 0 && len(rrule.ByYearDays) == 0 &&
		len(rrule.ByWeekNumbers) == 0 && len(rrule.ByWeekdays) == 0 {
		return nil, false
	}

	if len(rrule.ByMonths) > 0 {
		found := false
		for _, bm := range rrule.ByMonths {
			if bm == m {
				found = true
				break
			}
		}
		if !found {
			return nil, true
		}
	}

	var set map[int]bool
	seeded := false

	if len(rrule.ByYearDays) > 0 {
		next := map[int]bool{}
		for _, n := range rrule.ByYearDays {
			d, ok := nthDayOfYear(y, n)
			if ok && d.Year() == y && d.Month() == m {
				next[d.Day()] = true
			}
		}
		if len(next) == 0 {
			return nil, true
		}
		set, seeded = next, true
	}

	if len(rrule.ByMonthDays) > 0 {
		next := map[int]bool{}
		for _, n := range rrule.ByMonthDays {
			if day, ok := nthDayOfMonth(y, m, n); ok {
				next[day] = true
			}
		}
		set = intersectDaySets(set, seeded, next)
		seeded = true
		if len(set) == 0 {
			return nil, true
		}
	}

	if len(rrule.ByWeekNumbers) > 0 {
		next := map[int]bool{}
		for _, w := range rrule.ByWeekNumbers {
			monday, ok := nthWeekByWeekNo(y, w)
			if !ok {
				continue
			}
			for i := 0; i < 7; i++ {
				d := monday.AddDate(0, 0, i)
				if d.Year() == y && d.Month() == m {
					next[d.Day()] = true
				}
			}
		}
		set = intersectDaySets(set, seeded, next)
		seeded = true
		if len(set) == 0 {
			return nil, true
		}
	}

	if len(rrule.ByWeekdays) > 0 {
		if hasMixedOrdinals(rrule.ByWeekdays) {
			return nil, true
		}
		next := map[int]bool{}
		for _, wd := range rrule.ByWeekdays {
			if wd.IsEvery() {
				for _, d := range allWeekdayOfMonth(y, m, wd.WD) {
					next[d.Day()] = true
				}
			} else if d, ok := nthWeekdayOfMonth(y, m, wd.WD, wd.N); ok {
				next[d.Day()] = true
			}
		}
		set = intersectDaySets(set, seeded, next)
		seeded = true
		if len(set) == 0 {
			return nil, true
		}
	}

	out := make([]int, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Ints(out)
	return out, true
}

// intersectDaySets seeds with next when nothing has been seeded yet,
// otherwise keeps only the days present in both sets.
func intersectDaySets(existing map[int]bool, seeded bool, next map[int]bool) map[int]bool {
	if !seeded {
		return next
	}
	out := map[int]bool{}
	for d := range existing {
		if next[d] {
			out[d] = true
		}
	}
	return out
}

// limitBySetPos selects the sorted candidate set down to the positions
// named by setpos: positive k is the kth element (1-based), negative k
// counts from the end. An empty setpos is a no-op. Positions that resolve to
// the same element select it once.
func limitBySetPos(tt []time.Time, setpos []int) []time.Time {
	if len(setpos) == 0 {
		return tt
	}
	n := len(tt)
	var out []time.Time
	seen := make(map[int]bool, len(setpos))
	for _, pos := range setpos {
		var idx int
		switch {
		case pos > 0:
			idx = pos - 1
		case pos < 0:
			idx = n + pos
		default:
			continue
		}
		if idx >= 0 && idx < n && !seen[idx] {
			seen[idx] = true
			out = append(out, tt[idx])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
