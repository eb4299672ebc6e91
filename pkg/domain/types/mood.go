package types

import "github.com/m-mizutani/goerr/v2"

// Mood represents the emotional state recorded with a diary entry
type Mood string

const (
	MoodVeryGood Mood = "very_good"
	MoodGood     Mood = "good"
	MoodNeutral  Mood = "neutral"
	MoodBad      Mood = "bad"
	MoodVeryBad  Mood = "very_bad"
)

// AllMoods returns all valid moods, best first
func AllMoods() []Mood {
	return []Mood{
		MoodVeryGood,
		MoodGood,
		MoodNeutral,
		MoodBad,
		MoodVeryBad,
	}
}

// IsValid checks if the mood is valid
func (m Mood) IsValid() bool {
	switch m {
	case MoodVeryGood,
		MoodGood,
		MoodNeutral,
		MoodBad,
		MoodVeryBad:
		return true
	default:
		return false
	}
}

// Score maps the mood to a numeric score from 1 (very bad) to 5 (very good).
// Returns 0 for an invalid mood.
func (m Mood) Score() int {
	switch m {
	case MoodVeryGood:
		return 5
	case MoodGood:
		return 4
	case MoodNeutral:
		return 3
	case MoodBad:
		return 2
	case MoodVeryBad:
		return 1
	default:
		return 0
	}
}

// IsPositive reports whether the mood counts toward the positive insight bucket
func (m Mood) IsPositive() bool {
	return m == MoodVeryGood || m == MoodGood
}

// IsNegative reports whether the mood counts toward the negative insight bucket
func (m Mood) IsNegative() bool {
	return m == MoodBad || m == MoodVeryBad
}

// String returns the string representation of the mood
func (m Mood) String() string {
	return string(m)
}

// ParseMood parses a string into a Mood
func ParseMood(s string) (Mood, error) {
	mood := Mood(s)
	if !mood.IsValid() {
		return "", goerr.New("invalid mood", goerr.V("mood", s))
	}
	return mood, nil
}
