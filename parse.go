package rrule

import (
	"strconv"
	"strings"
	"time"
)

// dateTimeLayout is the RFC 5545 "form 2" basic date-time, optionally
// suffixed with Z for UTC.
const dateTimeLayout = "20060102T150405"

// ParseRRule parses a single RRULE property list, e.g.
// "FREQ=WEEKLY;COUNT=4;BYDAY=MO,TU". It does not accept a leading
// "RRULE:" tag or a DTSTART line; see ParseRRuleSet for the full two-line
// textual grammar.
//
// Unknown keys are ignored. Malformed COUNT defaults to 0 and malformed
// INTERVAL defaults to 1, matching this engine's permissive-parsing
// policy; only an unrecognized FREQ value fails the parse outright.
func ParseRRule(s string) (RRule, error) {
	var rule RRule

	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		value := strings.TrimSpace(kv[1])

		switch key {
		case "FREQ":
			f, err := ParseFrequency(value)
			if err != nil {
				return RRule{}, err
			}
			rule.Frequency = f
		case "UNTIL":
			u, floating, err := parseUntil(value)
			if err == nil {
				rule.Until = u
				rule.UntilFloating = floating
			}
		case "COUNT":
			c, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				c = 0
			}
			rule.Count = c
		case "INTERVAL":
			i, err := strconv.Atoi(value)
			if err != nil || i == 0 {
				i = 1
			}
			rule.Interval = i
		case "BYSECOND":
			rule.BySeconds = parseIntList(value)
		case "BYMINUTE":
			rule.ByMinutes = parseIntList(value)
		case "BYHOUR":
			rule.ByHours = parseIntList(value)
		case "BYDAY", "BYWEEKDAY":
			wds, err := parseWeekdayList(value)
			if err == nil {
				rule.ByWeekdays = wds
			}
		case "BYMONTHDAY":
			rule.ByMonthDays = parseIntList(value)
		case "BYYEARDAY":
			rule.ByYearDays = parseIntList(value)
		case "BYWEEKNO":
			rule.ByWeekNumbers = parseIntList(value)
		case "BYMONTH":
			for _, m := range parseIntList(value) {
				rule.ByMonths = append(rule.ByMonths, time.Month(m))
			}
		case "BYSETPOS":
			rule.BySetPos = parseIntList(value)
		case "WKST":
			if wd, ok := codeWeekdays[strings.ToUpper(value)]; ok {
				rule.WeekStart = &wd
			}
		case "SKIP":
			switch strings.ToUpper(value) {
			case "FORWARD":
				rule.InvalidBehavior = NextInvalid
			case "BACKWARD":
				rule.InvalidBehavior = PrevInvalid
			}
		case "RSCALE":
			// Only Gregorian is supported; the value is otherwise ignored.
		}
	}

	return rule, nil
}

func parseIntList(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, v := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// parseUntil parses the YYYYMMDDTHHMMSS[Z] form used by both DTSTART and
// UNTIL. floating reports whether the trailing Z (meaning UTC) was absent.
func parseUntil(s string) (t time.Time, floating bool, err error) {
	if strings.HasSuffix(s, "Z") {
		t, err = time.ParseInLocation(dateTimeLayout, strings.TrimSuffix(s, "Z"), time.UTC)
		return t, false, err
	}
	t, err = time.ParseInLocation(dateTimeLayout, s, time.UTC)
	return t, true, err
}
