package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2018, 8, 25, 9, 8, 7, 6, time.UTC) // it's a saturday

var cases = []struct {
	Name     string
	String   string
	RRule    RRule
	Dates    []string
	Terminal bool

	NoBenchmark bool
	NoTest      bool
}{
	{
		Name: "secondly is non-productive",
		RRule: RRule{
			Frequency: Secondly,
			Count:     3,
			Dtstart:   now,
		},
		Dates:    []string{},
		Terminal: true,
	},
	{
		Name: "minutely is non-productive",
		RRule: RRule{
			Frequency: Minutely,
			Count:     3,
			Dtstart:   now,
		},
		Dates:    []string{},
		Terminal: true,
	},

	{
		Name: "hourly is non-productive",
		RRule: RRule{
			Frequency: Hourly,
			Count:     3,
			Dtstart:   now,
		},
		Dates:    []string{},
		Terminal: true,
	},

	{
		Name: "simple daily",
		RRule: RRule{
			Frequency: Daily,
			Count:     3,
			Dtstart:   now,
		},
		Dates:    []string{"2018-08-25T09:08:07Z", "2018-08-26T09:08:07Z", "2018-08-27T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "daily setpos",
		RRule: RRule{
			Frequency: Daily,
			Count:     4,
			Dtstart:   now,
			ByHours:   []int{1, 2, 3},
			ByMonths:  []time.Month{time.August, time.September},
			BySetPos:  []int{1, 3, -1},
		},
		Dates:    []string{"2018-08-26T01:08:07Z", "2018-08-26T03:08:07Z", "2018-08-27T01:08:07Z", "2018-08-27T03:08:07Z"},
		Terminal: true,
	},
	{
		Name:   "weekly setpos",
		String: "FREQ=WEEKLY;COUNT=4;BYHOUR=1,2,3;BYMONTH=8,9;BYSETPOS=1,3,-1",
		RRule: RRule{
			Frequency: Weekly,
			Count:     4,
			Dtstart:   now,
			ByHours:   []int{1, 2, 3},
			ByMonths:  []time.Month{time.August, time.September},
			BySetPos:  []int{1, 3, -1},
		},
		Dates:    []string{"2018-09-01T01:08:07Z", "2018-09-01T03:08:07Z", "2018-09-08T01:08:07Z", "2018-09-08T03:08:07Z"},
		Terminal: true,
	},

	{
		Name: "monthly setpos",
		RRule: RRule{
			Frequency:  Monthly,
			ByWeekdays: []QualifiedWeekday{{N: 0, WD: time.Monday}, {N: 0, WD: time.Tuesday}, {N: 0, WD: time.Wednesday}, {N: 0, WD: time.Thursday}, {N: 0, WD: time.Friday}, {N: 0, WD: time.Saturday}, {N: 0, WD: time.Sunday}},
			Count:      4,
			Dtstart:    now,
			ByMonths:   []time.Month{time.August, time.September},
			BySetPos:   []int{1, 3, -1},
		},
		Dates:    []string{"2018-08-31T09:08:07Z", "2018-09-01T09:08:07Z", "2018-09-03T09:08:07Z", "2018-09-30T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "yearly setpos",
		RRule: RRule{
			Frequency:  Yearly,
			ByWeekdays: []QualifiedWeekday{{N: 0, WD: time.Monday}, {N: 0, WD: time.Tuesday}, {N: 0, WD: time.Wednesday}, {N: 0, WD: time.Thursday}, {N: 0, WD: time.Friday}, {N: 0, WD: time.Saturday}, {N: 0, WD: time.Sunday}},
			Count:      4,
			Dtstart:    now,
			ByMonths:   []time.Month{time.August, time.September},
			BySetPos:   []int{1, 3, -1},
		},
		String:   "FREQ=YEARLY;COUNT=4;BYDAY=MO,TU,WE,TH,FR,SA,SU;BYMONTH=8,9;BYSETPOS=1,3,-1",
		Dates:    []string{"2018-09-30T09:08:07Z", "2019-08-01T09:08:07Z", "2019-08-03T09:08:07Z", "2019-09-30T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "daily until",
		RRule: RRule{
			Frequency: Daily,
			Until:     time.Date(2018, 8, 30, 0, 0, 0, 0, time.UTC),
			Dtstart:   now,
		},
		Dates:    []string{"2018-08-25T09:08:07Z", "2018-08-26T09:08:07Z", "2018-08-27T09:08:07Z", "2018-08-28T09:08:07Z", "2018-08-29T09:08:07Z"},
		Terminal: true,
		String:   "FREQ=DAILY;UNTIL=20180830T000000Z",
	},

	{
		Name: "daily until floating",
		RRule: RRule{
			Frequency:     Daily,
			Until:         time.Date(2018, 8, 30, 0, 0, 0, 0, time.UTC),
			UntilFloating: true,
			Dtstart:       now,
		},
		Dates:    []string{"2018-08-25T09:08:07Z", "2018-08-26T09:08:07Z", "2018-08-27T09:08:07Z", "2018-08-28T09:08:07Z", "2018-08-29T09:08:07Z"},
		Terminal: true,
		String:   "FREQ=DAILY;UNTIL=20180830T000000",
	},

	{
		Name: "simple monthly",
		RRule: RRule{
			Frequency: Monthly,
			Count:     3,
			Dtstart:   now,
		},
		Dates:    []string{"2018-08-25T09:08:07Z", "2018-09-25T09:08:07Z", "2018-10-25T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "long monthly",
		RRule: RRule{
			Frequency: Monthly,
			Count:     300,
			Dtstart:   now,
		},
		Terminal: true,
		NoTest:   true,
	},

	{
		Name: "monthly by weekday",
		RRule: RRule{
			Frequency:  Monthly,
			Count:      3,
			Dtstart:    now,
			ByWeekdays: []QualifiedWeekday{{N: 1, WD: time.Tuesday}},
		},
		Dates:    []string{"2018-09-04T09:08:07Z", "2018-10-02T09:08:07Z", "2018-11-06T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "simple weekly",
		RRule: RRule{
			Frequency: Weekly,
			Count:     3,
			Dtstart:   now,
		},
		Dates:    []string{"2018-08-25T09:08:07Z", "2018-09-01T09:08:07Z", "2018-09-08T09:08:07Z"},
		Terminal: true,
	},

	{
		Name:   "weekly by weekday",
		String: "FREQ=WEEKLY;COUNT=3;BYDAY=TU",
		RRule: RRule{
			Frequency:  Weekly,
			Count:      3,
			Dtstart:    now,
			ByWeekdays: []QualifiedWeekday{{WD: time.Tuesday}},
		},
		Dates:    []string{"2018-08-28T09:08:07Z", "2018-09-04T09:08:07Z", "2018-09-11T09:08:07Z"},
		Terminal: true,
	},

	{
		Name:   "yearly by weekday mixing every and nth is rejected",
		String: "FREQ=YEARLY;COUNT=4;BYDAY=TU,35WE,-17MO",
		RRule: RRule{
			Frequency:  Yearly,
			Count:      4,
			Dtstart:    now,
			ByWeekdays: []QualifiedWeekday{{WD: time.Tuesday}, {N: 35, WD: time.Wednesday}, {N: -17, WD: time.Monday}},
		},
		Dates:    []string{},
		Terminal: true,
	},

	{
		Name: "monthly by monthday",
		RRule: RRule{
			Frequency:   Monthly,
			Count:       3,
			Dtstart:     now,
			ByMonthDays: []int{10},
		},
		Dates:    []string{"2018-09-10T09:08:07Z", "2018-10-10T09:08:07Z", "2018-11-10T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "end of time",
		RRule: RRule{
			Frequency: Yearly,
			Dtstart:   time.Date(219248495, time.December, 7, 0, 0, 0, 0, time.UTC),
		},
		String: "FREQ=YEARLY",
		Dates: []string{
			"219248495-12-07T00:00:00Z",
			"219248496-12-07T00:00:00Z",
			"219248497-12-07T00:00:00Z",
			"219248498-12-07T00:00:00Z",
		},
	},

	{
		Name: "leap day monthly omit",
		RRule: RRule{
			Frequency: Monthly,
			Dtstart:   time.Date(2019, time.August, 29, 0, 0, 0, 0, time.UTC),
			Interval:  6,
			Count:     4,
		},
		String:   "FREQ=MONTHLY;COUNT=4;INTERVAL=6",
		Terminal: true,
		Dates: []string{
			"2019-08-29T00:00:00Z",
			"2020-02-29T00:00:00Z",
			"2020-08-29T00:00:00Z",
			"2021-08-29T00:00:00Z",
		},
	},

	{
		Name: "leap day monthly prev",
		RRule: RRule{
			Frequency:       Monthly,
			Dtstart:         time.Date(2019, time.August, 29, 0, 0, 0, 0, time.UTC),
			Interval:        6,
			Count:           4,
			InvalidBehavior: PrevInvalid,
		},
		String:   "FREQ=MONTHLY;COUNT=4;INTERVAL=6;SKIP=BACKWARD;RSCALE=GREGORIAN",
		Terminal: true,
		Dates: []string{
			"2019-08-29T00:00:00Z",
			"2020-02-29T00:00:00Z",
			"2020-08-29T00:00:00Z",
			"2021-02-28T00:00:00Z",
		},
	},

	{
		Name: "leap day monthly next",
		RRule: RRule{
			Frequency:       Monthly,
			Dtstart:         time.Date(2019, time.August, 29, 0, 0, 0, 0, time.UTC),
			Interval:        6,
			Count:           4,
			InvalidBehavior: NextInvalid,
		},
		String:   "FREQ=MONTHLY;COUNT=4;INTERVAL=6;SKIP=FORWARD;RSCALE=GREGORIAN",
		Terminal: true,
		Dates: []string{
			"2019-08-29T00:00:00Z",
			"2020-02-29T00:00:00Z",
			"2020-08-29T00:00:00Z",
			"2021-03-01T00:00:00Z",
		},
	},

	{
		Name: "leap year day 366 omit",
		RRule: RRule{
			Frequency:  Yearly,
			Dtstart:    time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC),
			Count:      5,
			ByYearDays: []int{366},
		},
		String:   "FREQ=YEARLY;COUNT=5;BYYEARDAY=366",
		Terminal: true,
		Dates: []string{
			"2016-12-31T00:00:00Z",
			"2020-12-31T00:00:00Z",
			"2024-12-31T00:00:00Z",
			"2028-12-31T00:00:00Z",
			"2032-12-31T00:00:00Z",
		},
	},

	{
		Name: "leap year day 366 next",
		RRule: RRule{
			Frequency:       Yearly,
			Dtstart:         time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC),
			Count:           5,
			ByYearDays:      []int{366},
			InvalidBehavior: NextInvalid,
		},
		String:   "FREQ=YEARLY;COUNT=5;BYYEARDAY=366;SKIP=FORWARD;RSCALE=GREGORIAN",
		Terminal: true,
		Dates: []string{
			"2016-12-31T00:00:00Z",
			"2018-01-01T00:00:00Z",
			"2019-01-01T00:00:00Z",
			"2020-01-01T00:00:00Z",
			"2020-12-31T00:00:00Z",
		},
	},

	{
		Name: "leap year day 366 prev",
		RRule: RRule{
			Frequency:       Yearly,
			Dtstart:         time.Date(2016, time.December, 31, 0, 0, 0, 0, time.UTC),
			Count:           5,
			ByYearDays:      []int{366},
			InvalidBehavior: PrevInvalid,
		},
		String:   "FREQ=YEARLY;COUNT=5;BYYEARDAY=366;SKIP=BACKWARD;RSCALE=GREGORIAN",
		Terminal: true,
		Dates: []string{
			"2016-12-31T00:00:00Z",
			"2017-12-31T00:00:00Z",
			"2018-12-31T00:00:00Z",
			"2019-12-31T00:00:00Z",
			"2020-12-31T00:00:00Z",
		},
	},

	{
		Name: "yearly by weekno",
		RRule: RRule{
			Frequency:     Yearly,
			Dtstart:       time.Date(1997, 5, 12, 9, 0, 0, 0, time.UTC),
			Count:         3,
			ByWeekNumbers: []int{20},
			ByWeekdays:    []QualifiedWeekday{{WD: time.Monday}},
		},
		String: "FREQ=YEARLY;COUNT=3;BYDAY=MO;BYWEEKNO=20",
		Dates: []string{
			"1997-05-12T09:00:00Z",
			"1998-05-11T09:00:00Z",
			"1999-05-17T09:00:00Z",
		},
	},

	{
		Name: "daily byday ordinal ignored",
		RRule: RRule{
			Frequency:  Daily,
			Count:      2,
			Dtstart:    now,
			ByWeekdays: []QualifiedWeekday{{N: 1, WD: time.Monday}},
		},
		Dates:    []string{"2018-08-27T09:08:07Z", "2018-09-03T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "weekly bymonthday",
		RRule: RRule{
			Frequency:   Weekly,
			Count:       1,
			Dtstart:     now,
			ByMonthDays: []int{25},
		},
		Dates:    []string{"2018-08-25T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "monthly byyearday",
		RRule: RRule{
			Frequency:  Monthly,
			Count:      1,
			Dtstart:    now,
			ByYearDays: []int{300},
		},
		Dates:    []string{"2018-10-27T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "monthly byweekno",
		RRule: RRule{
			Frequency:     Monthly,
			Count:         1,
			Dtstart:       time.Date(2018, 1, 1, 9, 8, 7, 0, time.UTC),
			ByWeekNumbers: []int{3},
		},
		Dates:    []string{"2018-01-15T09:08:07Z"},
		Terminal: true,
	},

	{
		Name: "yearly bymonthday no bymonth",
		RRule: RRule{
			Frequency:   Yearly,
			Count:       3,
			Dtstart:     now,
			ByMonthDays: []int{15},
		},
		Dates: []string{
			"2018-09-15T09:08:07Z",
			"2018-10-15T09:08:07Z",
			"2018-11-15T09:08:07Z",
		},
		Terminal: true,
	},

	{
		Name: "yearly bymonthday last day per month",
		RRule: RRule{
			Frequency:   Yearly,
			Count:       2,
			Dtstart:     time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
			ByMonthDays: []int{-1},
			ByMonths:    []time.Month{time.February, time.April},
		},
		Dates:    []string{"2018-02-28T00:00:00Z", "2018-04-30T00:00:00Z"},
		Terminal: true,
	},
}

func MustRRule(str string) RRule {
	r, err := ParseRRule(str)
	if err != nil {
		panic(err)
	}
	return r
}

func NewYork() *time.Location {
	return mustLoadLoc("America/New_York")
}

func Phoenix() *time.Location {
	return mustLoadLoc("America/Phoenix")
}

func mustLoadLoc(loc string) *time.Location {
	ny, err := time.LoadLocation(loc)
	if ny == nil {
		errStr := "not found"
		if err != nil {
			errStr = err.Error()
		}

		panic("error loading IANA tzdata, which is required for daylight savings tests: " + errStr)
	}
	return ny
}

func TestRRule(t *testing.T) {
	for _, tc := range cases {
		if tc.NoTest {
			continue
		}

		t.Run(tc.Name, func(t *testing.T) {
			if tc.String != "" {
				t.Log(tc.String)

				parsed, err := ParseRRule(tc.String)
				require.NoError(t, err)
				require.NotNil(t, parsed)

				// unset dtstart for the comparisons, because it's only used operationally.
				// it's set on the test cases because we need it to run them.
				dtstart := tc.RRule.Dtstart
				tc.RRule.Dtstart = time.Time{}
				assert.Equal(t, tc.String, tc.RRule.String(), "RRule does not render to the correct string")
				assert.Equal(t, tc.RRule, parsed)

				tc.RRule.Dtstart = dtstart.Truncate(time.Second) // restore dtstart, but truncate it because rrule only operates at second.
			}

			// A non-terminal rule never ends on its own; compare only as many
			// leading occurrences as the case lists.
			max := 0
			if !tc.Terminal {
				max = len(tc.Dates)
			}
			dates := All(tc.RRule.Iterator(), max)
			assert.Equal(t, tc.Dates, rfcAll(dates))
		})
	}
}

func BenchmarkRRule(b *testing.B) {
	for _, tc := range cases {
		if tc.NoBenchmark {
			continue
		}

		b.Run(tc.Name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				All(tc.RRule.Iterator(), 0)
			}
		})
	}
}

func rfcAll(times []time.Time) []string {
	strs := make([]string, len(times))
	for i, t := range times {
		strs[i] = t.Format(time.RFC3339)
	}
	return strs
}
