package model

import "github.com/emotion-sanctuary/sanctum/pkg/domain/types"

// MoodCount is one mood's share of a statistics window
type MoodCount struct {
	Mood       types.Mood
	Count      int
	Percentage int // rounded percent of the filtered entries
}

// DailyMood is one day in the weekly trend
type DailyMood struct {
	Date  string  // YYYY-MM-DD
	Score float64 // average mood score for the day, 0 when no entries
	Count int
}

// MoodInsights buckets the mood distribution into rough sentiment bands
type MoodInsights struct {
	Positive int
	Neutral  int
	Negative int
}

// MoodStats is the computed statistics over a user's diary entries for a
// period. Produced on demand, never persisted.
type MoodStats struct {
	Period           types.StatsPeriod
	TotalCount       int
	Moods            []MoodCount // sorted by count descending
	MostFrequentMood *MoodCount  // nil when no entries
	AverageScore     float64     // 1.0-5.0, rounded to one decimal; 0 when empty
	WeeklyTrend      []DailyMood // last 7 days, oldest first
	Insights         MoodInsights
}
