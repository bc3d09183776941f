package rrule

import (
	"sort"
	"strings"
	"time"
)

// maxHorizonDefault is the default safety ceiling of an RRuleSet: a rule with
// no COUNT whose UNTIL is unset or later than the horizon is expanded only up
// to it.
var maxHorizonDefault = time.Date(2300, time.January, 1, 0, 0, 0, 0, time.UTC)

// RRuleSet binds one or more RRule patterns to a shared start time and zone,
// and carries the operations callers perform between construction and a
// single, final materialization.
//
// The first entry in Rules is the primary rule: set_count and set_until act
// on it, and its COUNT/UNTIL state governs the empty-set invariants below.
type RRuleSet struct {
	Rules []RRule

	// Dtstart is the civil start time shared by every rule in the set.
	Dtstart time.Time

	// Zone is the location occurrences are bound to once expansion is
	// complete. Defaults to UTC.
	Zone *time.Location

	// WindowStart and WindowEnd, when non-zero, clip the result set
	// inclusively on both ends after expansion.
	WindowStart time.Time
	WindowEnd   time.Time

	// MaxHorizon caps the expansion of any rule in the set that has no COUNT
	// and either no UNTIL or an UNTIL beyond it. A set whose primary rule has
	// neither COUNT nor UNTIL is empty regardless (see All). Defaults to
	// maxHorizonDefault.
	MaxHorizon time.Time
}

// NewRRuleSet builds a set from an already-parsed dtstart and rules.
func NewRRuleSet(dtstart time.Time, rules ...RRule) *RRuleSet {
	return &RRuleSet{
		Dtstart:    dtstart,
		Rules:      rules,
		Zone:       time.UTC,
		MaxHorizon: maxHorizonDefault,
	}
}

// ParseRRuleSet parses the two-line "DTSTART[;TZID=zone]:ts\nRRULE:props"
// textual form, or a bare single-line RRULE (in which case Dtstart is left
// zero and Zone defaults to UTC).
func ParseRRuleSet(text string) (*RRuleSet, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	set := &RRuleSet{Zone: time.UTC, MaxHorizon: maxHorizonDefault}

	ruleLine := lines[len(lines)-1]
	ruleLine = strings.TrimPrefix(strings.TrimSpace(ruleLine), "RRULE:")

	if len(lines) > 1 {
		dtLine := strings.TrimSpace(lines[0])
		dtLine = strings.TrimPrefix(dtLine, "DTSTART")

		var zoneName string
		if strings.HasPrefix(dtLine, ";TZID=") {
			rest := strings.TrimPrefix(dtLine, ";TZID=")
			idx := strings.Index(rest, ":")
			if idx < 0 {
				return nil, wrapErr(ErrMalformedDtstart, "missing DTSTART timestamp")
			}
			zoneName, dtLine = rest[:idx], rest[idx:]
		}
		dtLine = strings.TrimPrefix(dtLine, ":")

		ts, _, err := parseUntil(dtLine)
		if err != nil {
			return nil, wrapErr(ErrMalformedDtstart, err.Error())
		}
		set.Dtstart = ts

		if zoneName != "" {
			loc, err := time.LoadLocation(zoneName)
			if err != nil {
				return nil, wrapErr(ErrUnknownZone, err.Error())
			}
			set.Zone = loc
		}
	}

	rule, err := ParseRRule(ruleLine)
	if err != nil {
		return nil, err
	}
	set.Rules = []RRule{rule}

	return set, nil
}

// SetDtStart replaces the set's start civil time, parsed as
// YYYYMMDDTHHMMSS[Z].
func (set *RRuleSet) SetDtStart(ts string) error {
	t, _, err := parseUntil(ts)
	if err != nil {
		return wrapErr(ErrMalformedDtstart, err.Error())
	}
	set.Dtstart = t
	return nil
}

// SetTZ replaces the set's zone, by IANA name.
func (set *RRuleSet) SetTZ(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return wrapErr(ErrUnknownZone, err.Error())
	}
	set.Zone = loc
	return nil
}

// SetCount replaces the primary rule's COUNT, clearing any UNTIL (the two
// are mutually exclusive).
func (set *RRuleSet) SetCount(n uint64) {
	if len(set.Rules) == 0 {
		return
	}
	set.Rules[0].Count = n
	set.Rules[0].Until = time.Time{}
}

// SetUntil replaces the primary rule's UNTIL, clearing any COUNT.
func (set *RRuleSet) SetUntil(ts string) error {
	t, floating, err := parseUntil(ts)
	if err != nil {
		return wrapErr(ErrMalformedDtstart, err.Error())
	}
	if len(set.Rules) == 0 {
		return nil
	}
	set.Rules[0].Until = t
	set.Rules[0].UntilFloating = floating
	set.Rules[0].Count = 0
	return nil
}

// Between sets a post-filter civil-time window; occurrences outside
// [start, end] are dropped from All's result.
func (set *RRuleSet) Between(start, end string) error {
	st, _, err := parseUntil(start)
	if err != nil {
		return wrapErr(ErrMalformedDtstart, err.Error())
	}
	en, _, err := parseUntil(end)
	if err != nil {
		return wrapErr(ErrMalformedDtstart, err.Error())
	}
	set.WindowStart = st
	set.WindowEnd = en
	return nil
}

// AddRRule appends another pattern to the set.
func (set *RRuleSet) AddRRule(r RRule) {
	set.Rules = append(set.Rules, r)
}

// All materializes the set: every rule's expansion, unioned, windowed,
// bound to the configured zone, sorted, and deduplicated.
//
// Returns an empty slice when the primary rule has neither COUNT nor UNTIL
// (an unbounded set is refused rather than silently capped), or when the
// primary rule's UNTIL precedes dtstart.
func (set *RRuleSet) All() []time.Time {
	if len(set.Rules) == 0 {
		return nil
	}

	primary := set.Rules[0]
	if primary.Count == 0 && primary.Until.IsZero() {
		return nil
	}
	if primary.Count == 0 && set.Dtstart.After(primary.Until) {
		return nil
	}

	horizon := set.MaxHorizon
	if horizon.IsZero() {
		horizon = maxHorizonDefault
	}

	var out []time.Time
	for _, r := range set.Rules {
		re := r
		re.Dtstart = set.Dtstart
		if re.Count == 0 && (re.Until.IsZero() || re.Until.After(horizon)) {
			re.Until = horizon
		}
		out = append(out, All(re.Iterator(), 0)...)
	}

	if !set.WindowStart.IsZero() || !set.WindowEnd.IsZero() {
		out = filterTimes(out, windowLimiter(set.WindowStart, set.WindowEnd))
	}

	zone := set.Zone
	if zone == nil {
		zone = time.UTC
	}
	for i, t := range out {
		out[i] = CivilTimeFromTime(t).In(zone)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return dedupe(out)
}

func windowLimiter(start, end time.Time) limiter {
	return func(t *time.Time) bool {
		if !start.IsZero() && t.Before(start) {
			return false
		}
		if !end.IsZero() && t.After(end) {
			return false
		}
		return true
	}
}
