package types

import "github.com/m-mizutani/goerr/v2"

// StatsPeriod represents the time window of a statistics query
type StatsPeriod string

const (
	StatsPeriodWeek  StatsPeriod = "week"
	StatsPeriodMonth StatsPeriod = "month"
	StatsPeriodAll   StatsPeriod = "all"
)

// IsValid checks if the stats period is valid
func (p StatsPeriod) IsValid() bool {
	switch p {
	case StatsPeriodWeek, StatsPeriodMonth, StatsPeriodAll:
		return true
	default:
		return false
	}
}

// Normalize returns the period, treating empty as StatsPeriodAll.
func (p StatsPeriod) Normalize() StatsPeriod {
	if p == "" {
		return StatsPeriodAll
	}
	return p
}

// String returns the string representation of the stats period
func (p StatsPeriod) String() string {
	return string(p)
}

// ParseStatsPeriod parses a string into a StatsPeriod
func ParseStatsPeriod(s string) (StatsPeriod, error) {
	period := StatsPeriod(s)
	if !period.IsValid() {
		return "", goerr.New("invalid stats period", goerr.V("period", s))
	}
	return period, nil
}
