package rrule

import (
	"strconv"
	"strings"
)

// AllMillis formats set.All() as a comma-joined string of Unix millisecond
// timestamps. It performs no logic beyond formatting; it exists only as the
// boundary a foreign caller (CLI output, another language's binding) links
// against.
func (set *RRuleSet) AllMillis() string {
	times := set.All()
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = strconv.FormatInt(t.UnixMilli(), 10)
	}
	return strings.Join(parts, ",")
}
