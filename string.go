package rrule

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders rrule back into its RFC 5545 RRULE property list, the
// inverse of ParseRRule. Dtstart is not part of the encoding.
func (rrule RRule) String() string {
	var parts []string

	parts = append(parts, "FREQ="+rrule.Frequency.String())

	if !rrule.Until.IsZero() {
		layout := dateTimeLayout
		if !rrule.UntilFloating {
			layout += "Z"
		}
		parts = append(parts, "UNTIL="+rrule.Until.Format(layout))
	}

	if rrule.Count != 0 {
		parts = append(parts, "COUNT="+strconv.FormatUint(rrule.Count, 10))
	}

	if rrule.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(rrule.Interval))
	}

	if len(rrule.BySeconds) > 0 {
		parts = append(parts, "BYSECOND="+joinInts(rrule.BySeconds))
	}
	if len(rrule.ByMinutes) > 0 {
		parts = append(parts, "BYMINUTE="+joinInts(rrule.ByMinutes))
	}
	if len(rrule.ByHours) > 0 {
		parts = append(parts, "BYHOUR="+joinInts(rrule.ByHours))
	}
	if len(rrule.ByWeekdays) > 0 {
		strs := make([]string, len(rrule.ByWeekdays))
		for i, wd := range rrule.ByWeekdays {
			strs[i] = wd.String()
		}
		parts = append(parts, "BYDAY="+strings.Join(strs, ","))
	}
	if len(rrule.ByMonthDays) > 0 {
		parts = append(parts, "BYMONTHDAY="+joinInts(rrule.ByMonthDays))
	}
	if len(rrule.ByYearDays) > 0 {
		parts = append(parts, "BYYEARDAY="+joinInts(rrule.ByYearDays))
	}
	if len(rrule.ByWeekNumbers) > 0 {
		parts = append(parts, "BYWEEKNO="+joinInts(rrule.ByWeekNumbers))
	}
	if len(rrule.ByMonths) > 0 {
		months := make([]int, len(rrule.ByMonths))
		for i, m := range rrule.ByMonths {
			months[i] = int(m)
		}
		parts = append(parts, "BYMONTH="+joinInts(months))
	}
	if len(rrule.BySetPos) > 0 {
		parts = append(parts, "BYSETPOS="+joinInts(rrule.BySetPos))
	}
	if rrule.WeekStart != nil {
		parts = append(parts, "WKST="+weekdayCodes[*rrule.WeekStart])
	}

	if rrule.InvalidBehavior != OmitInvalid {
		switch rrule.InvalidBehavior {
		case NextInvalid:
			parts = append(parts, "SKIP=FORWARD")
		case PrevInvalid:
			parts = append(parts, "SKIP=BACKWARD")
		}
		parts = append(parts, "RSCALE=GREGORIAN")
	}

	return strings.Join(parts, ";")
}

func joinInts(vals []int) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(strs, ",")
}
