package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// StatsUseCase computes mood statistics over diary entries. Statistics are
// derived on demand and never persisted.
type StatsUseCase struct {
	uc  *UseCases
	now func() time.Time
}

func newStatsUseCase(uc *UseCases) *StatsUseCase {
	return &StatsUseCase{uc: uc, now: time.Now}
}

// Compute aggregates the user's diary moods over the period. An invalid
// period is rejected; an empty one means all time.
func (x *StatsUseCase) Compute(ctx context.Context, userID string, period types.StatsPeriod) (*model.MoodStats, error) {
	period = period.Normalize()
	if !period.IsValid() {
		return nil, goerr.New("invalid stats period", goerr.V("period", period))
	}

	entries, err := x.uc.repo.Diary().List(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list diary entries for statistics")
	}

	now := x.now().UTC()
	return computeMoodStats(entries, period, now), nil
}

// periodCutoff returns the inclusive lower bound for the period, or zero time
// for all-time
func periodCutoff(period types.StatsPeriod, now time.Time) time.Time {
	switch period {
	case types.StatsPeriodWeek:
		return now.AddDate(0, 0, -7)
	case types.StatsPeriodMonth:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

func computeMoodStats(entries []*model.DiaryEntry, period types.StatsPeriod, now time.Time) *model.MoodStats {
	cutoff := periodCutoff(period, now)

	var filtered []*model.DiaryEntry
	for _, e := range entries {
		if !cutoff.IsZero() && entryDate(e).Before(cutoff) {
			continue
		}
		filtered = append(filtered, e)
	}

	stats := &model.MoodStats{
		Period:      period,
		TotalCount:  len(filtered),
		Moods:       []model.MoodCount{},
		WeeklyTrend: weeklyTrend(entries, now),
	}
	if len(filtered) == 0 {
		return stats
	}

	counts := make(map[types.Mood]int)
	scoreSum := 0
	for _, e := range filtered {
		counts[e.Mood]++
		scoreSum += e.Mood.Score()

		switch {
		case e.Mood.IsPositive():
			stats.Insights.Positive++
		case e.Mood.IsNegative():
			stats.Insights.Negative++
		default:
			stats.Insights.Neutral++
		}
	}

	for _, mood := range types.AllMoods() {
		count, ok := counts[mood]
		if !ok {
			continue
		}
		stats.Moods = append(stats.Moods, model.MoodCount{
			Mood:       mood,
			Count:      count,
			Percentage: int(math.Round(float64(count) * 100 / float64(len(filtered)))),
		})
	}
	sort.SliceStable(stats.Moods, func(i, j int) bool {
		return stats.Moods[i].Count > stats.Moods[j].Count
	})
	if len(stats.Moods) > 0 {
		top := stats.Moods[0]
		stats.MostFrequentMood = &top
	}

	avg := float64(scoreSum) / float64(len(filtered))
	stats.AverageScore = math.Round(avg*10) / 10

	return stats
}

// weeklyTrend aggregates the last 7 calendar days, oldest first, from the
// full entry set regardless of the requested period
func weeklyTrend(entries []*model.DiaryEntry, now time.Time) []model.DailyMood {
	byDate := make(map[string][]*model.DiaryEntry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	trend := make([]model.DailyMood, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		day := model.DailyMood{Date: date}

		if dayEntries := byDate[date]; len(dayEntries) > 0 {
			sum := 0
			for _, e := range dayEntries {
				sum += e.Mood.Score()
			}
			day.Count = len(dayEntries)
			day.Score = math.Round(float64(sum)/float64(len(dayEntries))*10) / 10
		}

		trend = append(trend, day)
	}
	return trend
}

// entryDate resolves the entry's calendar date for period filtering, falling
// back to CreatedAt when the date string does not parse
func entryDate(e *model.DiaryEntry) time.Time {
	if t, err := time.Parse("2006-01-02", e.Date); err == nil {
		return t
	}
	return e.CreatedAt
}
