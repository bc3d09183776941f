package rrule

import "time"

// limiter reports whether a candidate civil time satisfies one BYxxx
// restriction. A nil or empty rule part is permissive: every limiter
// returns true when given no values to check against.
type limiter func(t *time.Time) bool

// combineLimiters ANDs a set of limiters together into one.
func combineLimiters(limiters ...limiter) limiter {
	return func(t *time.Time) bool {
		return checkLimiters(t, limiters...)
	}
}

// checkLimiters evaluates limiters against t directly, short-circuiting on
// the first rejection.
func checkLimiters(t *time.Time, limiters ...limiter) bool {
	if t == nil {
		return false
	}
	for _, l := range limiters {
		if !l(t) {
			return false
		}
	}
	return true
}

// filterTimes applies a limiter to each element of tt independently,
// keeping only those that pass.
func filterTimes(tt []time.Time, l limiter) []time.Time {
	var out []time.Time
	for i := range tt {
		if l(&tt[i]) {
			out = append(out, tt[i])
		}
	}
	return out
}

func normalizeMod(vals []int, mod int) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		if v < 0 {
			v += mod
		}
		out[i] = v
	}
	return out
}

func validSecond(seconds []int) limiter {
	if len(seconds) == 0 {
		return func(t *time.Time) bool { return true }
	}
	want := normalizeMod(seconds, 60)
	return func(t *time.Time) bool {
		for _, s := range want {
			if t.Second() == s {
				return true
			}
		}
		return false
	}
}

func validMinute(minutes []int) limiter {
	if len(minutes) == 0 {
		return func(t *time.Time) bool { return true }
	}
	want := normalizeMod(minutes, 60)
	return func(t *time.Time) bool {
		for _, m := range want {
			if t.Minute() == m {
				return true
			}
		}
		return false
	}
}

func validHour(hours []int) limiter {
	if len(hours) == 0 {
		return func(t *time.Time) bool { return true }
	}
	want := normalizeMod(hours, 24)
	return func(t *time.Time) bool {
		for _, h := range want {
			if t.Hour() == h {
				return true
			}
		}
		return false
	}
}

// validWeekday matches only the weekday letter; an ordinal qualifier (the
// "1" in "1FR") is ignored here since it is only meaningful where a
// candidate is generated directly against a period, not filtered.
func validWeekday(wds []QualifiedWeekday) limiter {
	if len(wds) == 0 {
		return func(t *time.Time) bool { return true }
	}
	return func(t *time.Time) bool {
		for _, wd := range wds {
			if t.Weekday() == wd.WD {
				return true
			}
		}
		return false
	}
}

func validMonthDay(days []int) limiter {
	if len(days) == 0 {
		return func(t *time.Time) bool { return true }
	}
	return func(t *time.Time) bool {
		for _, n := range days {
			if isNthDayOfMonth(*t, n) {
				return true
			}
		}
		return false
	}
}

func validMonth(months []time.Month) limiter {
	if len(months) == 0 {
		return func(t *time.Time) bool { return true }
	}
	return func(t *time.Time) bool {
		for _, m := range months {
			if t.Month() == m {
				return true
			}
		}
		return false
	}
}

func validWeek(weekNos []int) limiter {
	if len(weekNos) == 0 {
		return func(t *time.Time) bool { return true }
	}
	return func(t *time.Time) bool {
		for _, w := range weekNos {
			if isInNthWeekNo(*t, w) {
				return true
			}
		}
		return false
	}
}

func validYearDay(days []int) limiter {
	if len(days) == 0 {
		return func(t *time.Time) bool { return true }
	}
	return func(t *time.Time) bool {
		for _, n := range days {
			if isNthDayOfYear(*t, n) {
				return true
			}
		}
		return false
	}
}
