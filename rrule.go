// Package rrule implements recurrence processing as defined by RFC 5545.
//
//	FREQ=WEEKLY;BYDAY=MO;INTERVAL=2
//
// would generate occurrences every other week on Monday.
//
// RFC 7529 is partially implemented. The SKIP and RSCALE clauses are
// supported, but only Gregorian is implemented.
//
// HOURLY, MINUTELY, and SECONDLY frequencies are recognized and validated
// but never productive: their iterators yield no occurrences. Only DAILY,
// WEEKLY, MONTHLY, and YEARLY expand.
package rrule

import (
	"fmt"
	"time"
)

// RRule represents a single pattern within a recurrence.
type RRule struct {
	Frequency Frequency `json:"frequency"`

	// Either Until or Count may be set, but not both.
	Until time.Time `json:"until"`
	// If true, the RRule will encode using local time (no offset).
	UntilFloating bool `json:"until_floating"`

	Count uint64 `json:"count"`

	// Dtstart is not actually part of the RRule when encoded, but it's
	// included here because it's required to expand the pattern. It is
	// treated as a zone-naive civil time: all expansion arithmetic runs
	// against its wall-clock fields, with any time zone binding applied by
	// the caller (see RRuleSet).
	//
	// If zero, time.Now is used when an iterator is generated.
	Dtstart time.Time `json:"dtstart"`

	// 0 means the default value, which is 1.
	Interval int `json:"interval"`

	BySeconds     []int              `json:"by_seconds"` // 0 to 59
	ByMinutes     []int              `json:"by_minutes"` // 0 to 59
	ByHours       []int              `json:"by_hours"`   // 0 to 23
	ByWeekdays    []QualifiedWeekday `json:"by_weekdays"`
	ByMonthDays   []int              `json:"by_month_days"`   // 1 to 31
	ByWeekNumbers []int              `json:"by_week_numbers"` // 1 to 53
	ByMonths      []time.Month       `json:"by_months"`
	ByYearDays    []int              `json:"by_year_days"` // 1 to 366
	BySetPos      []int              `json:"by_set_pos"`   // -366 to 366

	// InvalidBehavior defines how to behave when a generated date wouldn't
	// exist, like February 31st.
	InvalidBehavior InvalidBehavior `json:"invalid_behavior"`

	WeekStart *time.Weekday `json:"week_start"` // if nil, Monday
}

// Iterator returns an Iterator for the pattern. Unlike RFC 5545 proper,
// this engine does not reject BY* combinations it can still assign a
// well-defined meaning to: a numeric BYDAY qualifier at DAILY/WEEKLY
// frequency is accepted and its ordinal ignored (spec.md §4.2.1), and
// WEEKLY+BYMONTHDAY is accepted and filtered per §4.2.2. Iterator itself
// panics only on a Frequency value outside the seven defined constants; the
// zone-binding panic lives in zonebind.go.
func (rrule RRule) Iterator() Iterator {
	switch rrule.Frequency {
	case Secondly, Minutely, Hourly:
		return nonProductive(rrule)
	case Daily:
		return setDaily(rrule)
	case Weekly:
		return setWeekly(rrule)
	case Monthly:
		return setMonthly(rrule)
	case Yearly:
		return setYearly(rrule)
	default:
		panic(fmt.Sprintf("invalid frequency %v", rrule.Frequency))
	}
}

func setDaily(rrule RRule) *iterator {
	start := rrule.Dtstart
	if start.IsZero() {
		start = time.Now()
	}

	interval := 1
	if rrule.Interval != 0 {
		interval = rrule.Interval
	}

	current := start

	return &iterator{
		minTime:  start,
		maxTime:  timeOrMax(rrule.Until),
		setpos:   rrule.BySetPos,
		queueCap: rrule.Count,
		next: func() *time.Time {
			ret := current
			current = current.AddDate(0, 0, interval)
			return &ret
		},

		valid: combineLimiters(
			validMonth(rrule.ByMonths),
			validMonthDay(rrule.ByMonthDays),
			validYearDay(rrule.ByYearDays),
			validWeek(rrule.ByWeekNumbers),
			validWeekday(rrule.ByWeekdays),
		),

		variations: func(t *time.Time) []time.Time {
			if t == nil {
				return nil
			}
			tt := expandBySeconds([]time.Time{*t}, rrule.BySeconds...)
			tt = expandByMinutes(tt, rrule.ByMinutes...)
			tt = expandByHours(tt, rrule.ByHours...)
			tt = limitBySetPos(tt, rrule.BySetPos)
			return tt
		},
	}
}

func setWeekly(rrule RRule) *iterator {
	start := rrule.Dtstart
	if start.IsZero() {
		start = time.Now()
	}

	interval := 1
	if rrule.Interval != 0 {
		interval = rrule.Interval
	}

	current := start

	return &iterator{
		minTime:  start,
		maxTime:  timeOrMax(rrule.Until),
		setpos:   rrule.BySetPos,
		queueCap: rrule.Count,
		next: func() *time.Time {
			ret := current
			current = current.AddDate(0, 0, interval*7)
			return &ret
		},

		valid: combineLimiters(
			validMonth(rrule.ByMonths),
		),

		variations: func(t *time.Time) []time.Time {
			if t == nil {
				return nil
			}
			tt := expandByWeekdays([]time.Time{*t}, rrule.weekStart(), rrule.ByWeekdays...)
			tt = filterTimes(tt, combineLimiters(
				validMonthDay(rrule.ByMonthDays),
				validYearDay(rrule.ByYearDays),
				validWeek(rrule.ByWeekNumbers),
			))
			tt = expandBySeconds(tt, rrule.BySeconds...)
			tt = expandByMinutes(tt, rrule.ByMinutes...)
			tt = expandByHours(tt, rrule.ByHours...)
			tt = limitBySetPos(tt, rrule.BySetPos)
			return tt
		},
	}
}

func setMonthly(rrule RRule) *iterator {
	start := rrule.Dtstart
	if start.IsZero() {
		start = time.Now()
	}

	current := start

	interval := 1
	if rrule.Interval != 0 {
		interval = rrule.Interval
	}

	checkLeapDay := current.Day() >= 29

	return &iterator{
		minTime:  start,
		maxTime:  timeOrMax(rrule.Until),
		setpos:   rrule.BySetPos,
		queueCap: rrule.Count,
		next: func() *time.Time {
			ret := current

			current = current.AddDate(0, interval, 0)

			// Only rules keyed on the 29th/30th/31st can be perturbed by a
			// short month rolling the date into a later month than
			// intended.
			if checkLeapDay {
				diff := monthDiff(&ret, &current)
				if diff%interval != 0 {
					switch rrule.InvalidBehavior {
					case PrevInvalid:
						current = current.AddDate(0, 0, -1)
					case NextInvalid:
						// time.AddDate already rolled forward.
					case OmitInvalid:
						mult := 1
						for diff%interval != 0 {
							mult++
							current = ret.AddDate(0, interval*mult, 0)
							diff = monthDiff(&ret, &current)
						}
					}
				}
			}

			return &ret
		},

		valid: func(t *time.Time) bool {
			if t == nil {
				return false
			}
			return checkLimiters(t, validMonth(rrule.ByMonths))
		},

		// Compound mode builds the month's candidate set by intersecting
		// BYYEARDAY/BYMONTHDAY/BYWEEKNO/BYDAY per spec.md §4.2.3's five-step
		// order (monthDayCandidates); simple mode (none of those four set)
		// falls back to the bare anchor, narrowed only by BYSECOND/MINUTE/
		// HOUR and BYSETPOS.
		variations: func(t *time.Time) []time.Time {
			if t == nil {
				return nil
			}

			days, compound := monthDayCandidates(t.Year(), t.Month(), rrule)

			var tt []time.Time
			if compound {
				tt = make([]time.Time, 0, len(days))
				for _, d := range days {
					tt = append(tt, time.Date(t.Year(), t.Month(), d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
				}
			} else {
				tt = []time.Time{*t}
			}

			tt = expandBySeconds(tt, rrule.BySeconds...)
			tt = expandByMinutes(tt, rrule.ByMinutes...)
			tt = expandByHours(tt, rrule.ByHours...)
			tt = limitBySetPos(tt, rrule.BySetPos)
			return tt
		},
	}
}

func setYearly(rrule RRule) *iterator {
	start := rrule.Dtstart
	if start.IsZero() {
		start = time.Now()
	}

	interval := 1
	if rrule.Interval != 0 {
		interval = rrule.Interval
	}

	current := start

	plainByDay := plainWeekdays(rrule.ByWeekdays)

	return &iterator{
		minTime:  start,
		maxTime:  timeOrMax(rrule.Until),
		setpos:   rrule.BySetPos,
		queueCap: rrule.Count,
		next: func() *time.Time {
			ret := current
			current = current.AddDate(interval, 0, 0)
			return &ret
		},

		valid: func(t *time.Time) bool {
			if t == nil {
				return false
			}

			// See note 2 on page 44 of RFC 5545, including erratum 3747. The
			// BYMONTH gate itself is not applied here when BYMONTHDAY/BYYEARDAY
			// are present: expandYearByMonthDays below resolves BYMONTHDAY
			// against every BYMONTH month directly, so gating the anchor's own
			// month here would reject years whose dtstart month isn't one of
			// the BYMONTH months even though other BYMONTH months still apply.
			if len(rrule.ByYearDays) > 0 || len(rrule.ByMonthDays) > 0 {
				return checkLimiters(t, validWeekday(rrule.ByWeekdays))
			}

			return checkLimiters(t, validMonth(rrule.ByMonths))
		},

		variations: func(t *time.Time) []time.Time {
			if t == nil {
				return nil
			}

			tt := expandBySeconds([]time.Time{*t}, rrule.BySeconds...)
			tt = expandByMinutes(tt, rrule.ByMinutes...)
			tt = expandByHours(tt, rrule.ByHours...)

			tt = expandByYearDays(tt, rrule.InvalidBehavior, rrule.ByYearDays...)
			if len(rrule.ByMonthDays) > 0 {
				tt = expandYearByMonthDays(tt, rrule.ByMonths, rrule.ByMonthDays)
			} else {
				tt = expandByMonths(tt, rrule.InvalidBehavior, rrule.ByMonths...)
			}

			// See note 2 on page 44 of RFC 5545, including erratum 3779.
			if len(rrule.ByYearDays) == 0 && len(rrule.ByMonthDays) == 0 {
				switch {
				case len(rrule.ByMonths) != 0:
					tt = expandMonthByWeekdays(tt, rrule.InvalidBehavior, nil, rrule.ByWeekdays...)
				case len(rrule.ByWeekNumbers) != 0:
					tt = expandByWeekNumbers(tt, rrule.InvalidBehavior, rrule.weekStart(), plainByDay, rrule.ByWeekNumbers...)
				default:
					tt = expandYearByWeekdays(tt, rrule.InvalidBehavior, rrule.ByWeekdays...)
				}
			}

			tt = limitBySetPos(tt, rrule.BySetPos)
			return tt
		},
	}
}

func (rrule *RRule) weekStart() time.Weekday {
	if rrule.WeekStart == nil {
		return time.Monday
	}
	return *rrule.WeekStart
}

func timeOrMax(t time.Time) time.Time {
	if t.IsZero() {
		return absoluteMaxTime
	}
	return t
}

// monthDiff is the signed count of calendar months between a and b.
func monthDiff(a, b *time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
