package http

import (
	"net/http"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

type moodCountResponse struct {
	Mood       string `json:"mood"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type dailyMoodResponse struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

type statsResponse struct {
	Period           string              `json:"period"`
	TotalCount       int                 `json:"totalCount"`
	Moods            []moodCountResponse `json:"moods"`
	MostFrequentMood *moodCountResponse  `json:"mostFrequentMood,omitempty"`
	AverageScore     float64             `json:"averageScore"`
	WeeklyTrend      []dailyMoodResponse `json:"weeklyTrend"`
	Insights         struct {
		Positive int `json:"positive"`
		Neutral  int `json:"neutral"`
		Negative int `json:"negative"`
	} `json:"insights"`
}

func toStatsResponse(stats *model.MoodStats) statsResponse {
	resp := statsResponse{
		Period:       stats.Period.String(),
		TotalCount:   stats.TotalCount,
		Moods:        make([]moodCountResponse, 0, len(stats.Moods)),
		AverageScore: stats.AverageScore,
		WeeklyTrend:  make([]dailyMoodResponse, 0, len(stats.WeeklyTrend)),
	}

	for _, m := range stats.Moods {
		resp.Moods = append(resp.Moods, moodCountResponse{
			Mood:       m.Mood.String(),
			Count:      m.Count,
			Percentage: m.Percentage,
		})
	}
	if stats.MostFrequentMood != nil {
		resp.MostFrequentMood = &moodCountResponse{
			Mood:       stats.MostFrequentMood.Mood.String(),
			Count:      stats.MostFrequentMood.Count,
			Percentage: stats.MostFrequentMood.Percentage,
		}
	}
	for _, d := range stats.WeeklyTrend {
		resp.WeeklyTrend = append(resp.WeeklyTrend, dailyMoodResponse{
			Date:  d.Date,
			Score: d.Score,
			Count: d.Count,
		})
	}
	resp.Insights.Positive = stats.Insights.Positive
	resp.Insights.Neutral = stats.Insights.Neutral
	resp.Insights.Negative = stats.Insights.Negative

	return resp
}

func statsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		period := types.StatsPeriod(r.URL.Query().Get("period")).Normalize()
		if !period.IsValid() {
			errutil.HandleHTTP(ctx, w, goerr.New("invalid stats period", goerr.V("period", period)), http.StatusBadRequest)
			return
		}

		stats, err := uc.Stats.Compute(ctx, userIDFrom(ctx), period)
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, statusFromError(err))
			return
		}

		respondJSON(ctx, w, http.StatusOK, toStatsResponse(stats))
	}
}
