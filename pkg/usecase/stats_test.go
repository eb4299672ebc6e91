package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/repository/memory"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format("2006-01-02")
}

func seedDiary(t *testing.T, repo *memory.Memory, date string, mood types.Mood) {
	t.Helper()
	_, err := repo.Diary().Create(context.Background(), "user-1", &model.DiaryEntry{
		Date:    date,
		Mood:    mood,
		Content: "entry for " + date,
	})
	gt.NoError(t, err).Required()
}

func TestStatsCompute(t *testing.T) {
	ctx := context.Background()

	t.Run("empty diary", func(t *testing.T) {
		uc := usecase.New(memory.New())

		stats, err := uc.Stats.Compute(ctx, "user-1", types.StatsPeriodAll)
		gt.NoError(t, err).Required()
		gt.Number(t, stats.TotalCount).Equal(0)
		gt.Value(t, stats.MostFrequentMood).Nil()
		gt.Number(t, stats.AverageScore).Equal(0)
		gt.Array(t, stats.WeeklyTrend).Length(7)
	})

	t.Run("aggregates all time", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		seedDiary(t, repo, daysAgo(0), types.MoodVeryGood)
		seedDiary(t, repo, daysAgo(1), types.MoodGood)
		seedDiary(t, repo, daysAgo(2), types.MoodGood)
		seedDiary(t, repo, daysAgo(3), types.MoodNeutral)
		seedDiary(t, repo, daysAgo(4), types.MoodVeryBad)

		stats, err := uc.Stats.Compute(ctx, "user-1", types.StatsPeriodAll)
		gt.NoError(t, err).Required()
		gt.Number(t, stats.TotalCount).Equal(5)

		gt.Value(t, stats.MostFrequentMood).NotNil()
		gt.Value(t, stats.MostFrequentMood.Mood).Equal(types.MoodGood)
		gt.Number(t, stats.MostFrequentMood.Count).Equal(2)
		gt.Number(t, stats.MostFrequentMood.Percentage).Equal(40)

		// (5+4+4+3+1)/5 = 3.4
		gt.Number(t, stats.AverageScore).Equal(3.4)

		gt.Number(t, stats.Insights.Positive).Equal(3)
		gt.Number(t, stats.Insights.Neutral).Equal(1)
		gt.Number(t, stats.Insights.Negative).Equal(1)
	})

	t.Run("week period filters old entries", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		seedDiary(t, repo, daysAgo(1), types.MoodGood)
		seedDiary(t, repo, daysAgo(30), types.MoodVeryBad)

		stats, err := uc.Stats.Compute(ctx, "user-1", types.StatsPeriodWeek)
		gt.NoError(t, err).Required()
		gt.Number(t, stats.TotalCount).Equal(1)
		gt.Value(t, stats.MostFrequentMood.Mood).Equal(types.MoodGood)
	})

	t.Run("empty period defaults to all", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		seedDiary(t, repo, daysAgo(60), types.MoodNeutral)

		stats, err := uc.Stats.Compute(ctx, "user-1", "")
		gt.NoError(t, err).Required()
		gt.Value(t, stats.Period).Equal(types.StatsPeriodAll)
		gt.Number(t, stats.TotalCount).Equal(1)
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Stats.Compute(ctx, "user-1", "fortnight")
		gt.Error(t, err)
	})

	t.Run("weekly trend covers last seven days oldest first", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		seedDiary(t, repo, daysAgo(0), types.MoodVeryGood)
		seedDiary(t, repo, daysAgo(0), types.MoodNeutral)
		seedDiary(t, repo, daysAgo(6), types.MoodBad)

		stats, err := uc.Stats.Compute(ctx, "user-1", types.StatsPeriodAll)
		gt.NoError(t, err).Required()
		gt.Array(t, stats.WeeklyTrend).Length(7).Required()

		oldest := stats.WeeklyTrend[0]
		gt.Value(t, oldest.Date).Equal(daysAgo(6))
		gt.Number(t, oldest.Count).Equal(1)
		gt.Number(t, oldest.Score).Equal(2)

		today := stats.WeeklyTrend[6]
		gt.Value(t, today.Date).Equal(daysAgo(0))
		gt.Number(t, today.Count).Equal(2)
		// (5+3)/2 = 4.0
		gt.Number(t, today.Score).Equal(4)

		empty := stats.WeeklyTrend[3]
		gt.Number(t, empty.Count).Equal(0)
		gt.Number(t, empty.Score).Equal(0)
	})
}
