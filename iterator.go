package rrule

import (
	"sort"
	"time"
)

// defaultResultCap is the hard safety ceiling applied when neither COUNT
// nor UNTIL bounds the output.
const defaultResultCap = 65535

// absoluteMaxTime stands in for "no UNTIL bound" at the raw iterator layer.
// It is deliberately far beyond any realistic horizon; RRuleSet enforces
// its own, much nearer, default horizon on top of this.
var absoluteMaxTime = time.Date(9999999999, time.January, 1, 0, 0, 0, 0, time.UTC)

// Iterator walks the candidate axis of a single RRule, one period at a
// time, producing the (possibly empty) batch of occurrences that period
// contributes. It is returned by RRule.Iterator and consumed by All.
type Iterator interface {
	advance() ([]time.Time, bool)
	cap() uint64
}

// iterator is the concrete engine shared by every frequency. A frequency's
// constructor supplies next (how to step to the following period), valid
// (a cheap pre-expansion gate on the period anchor), and variations (the
// full candidate set the period contributes once accepted).
type iterator struct {
	minTime, maxTime time.Time
	setpos           []int
	queueCap         uint64

	next       func() *time.Time
	valid      func(t *time.Time) bool
	variations func(t *time.Time) []time.Time
}

func (it *iterator) cap() uint64 { return it.queueCap }

func (it *iterator) advance() ([]time.Time, bool) {
	t := it.next()
	if t == nil {
		return nil, false
	}
	if t.After(it.maxTime) {
		return nil, false
	}
	if !it.valid(t) {
		return nil, true
	}

	vs := it.variations(t)
	out := make([]time.Time, 0, len(vs))
	for _, v := range vs {
		if v.Before(it.minTime) || v.After(it.maxTime) {
			continue
		}
		out = append(out, v)
	}
	return out, true
}

// All drains iter, returning a sorted, deduplicated occurrence list. max,
// when positive, further caps the result below whatever the rule's own
// COUNT and the default safety ceiling would otherwise allow; 0 defers
// entirely to the rule.
func All(iter Iterator, max int) []time.Time {
	if iter == nil {
		return nil
	}

	limit := iter.cap()
	if limit == 0 {
		limit = defaultResultCap
	}
	if max > 0 && uint64(max) < limit {
		limit = uint64(max)
	}

	var out []time.Time
	// steps bounds how many periods are examined, independent of limit: a
	// rule whose valid/variations gates reject every candidate (e.g. a
	// rejected mixed-ordinal BYDAY) would otherwise advance forever when
	// COUNT is set but UNTIL is not.
	steps := 0
	for uint64(len(out)) < limit && steps < defaultResultCap {
		vals, cont := iter.advance()
		out = append(out, vals...)
		if !cont {
			break
		}
		steps++
	}
	if uint64(len(out)) > limit {
		out = out[:limit]
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return dedupe(out)
}

func dedupe(tt []time.Time) []time.Time {
	if len(tt) == 0 {
		return tt
	}
	out := tt[:1:1]
	for _, t := range tt[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

// nonProductive returns an iterator that recognizes its frequency but
// yields no occurrences, per this revision's treatment of HOURLY/MINUTELY/
// SECONDLY.
func nonProductive(rrule RRule) *iterator {
	exhausted := false
	return &iterator{
		minTime:  rrule.Dtstart,
		maxTime:  timeOrMax(rrule.Until),
		queueCap: rrule.Count,
		next: func() *time.Time {
			if exhausted {
				return nil
			}
			exhausted = true
			t := rrule.Dtstart
			return &t
		},
		valid:      func(t *time.Time) bool { return false },
		variations: func(t *time.Time) []time.Time { return nil },
	}
}
