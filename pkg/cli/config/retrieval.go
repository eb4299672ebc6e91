package config

import (
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Retrieval holds CLI flags for similarity retrieval tuning. The thresholds
// are policy, not code: each surface can be tuned without a rebuild.
type Retrieval struct {
	poolSize    int
	chatTopK    int
	chatMinSim  float64
	diaryTopK   int
	diaryMinSim float64
	dedupe      bool
}

// Flags returns CLI flags for retrieval configuration
func (r *Retrieval) Flags() []cli.Flag {
	defaults := usecase.DefaultRetrievalConfig()

	return []cli.Flag{
		&cli.IntFlag{
			Name:        "retrieval-pool-size",
			Usage:       "Number of recent records fetched as ranking candidates",
			Value:       50,
			Sources:     cli.EnvVars("SANCTUM_RETRIEVAL_POOL_SIZE"),
			Destination: &r.poolSize,
		},
		&cli.IntFlag{
			Name:        "chat-top-k",
			Usage:       "Maximum past messages included as chat context",
			Value:       defaults.ChatTopK,
			Sources:     cli.EnvVars("SANCTUM_CHAT_TOP_K"),
			Destination: &r.chatTopK,
		},
		&cli.FloatFlag{
			Name:        "chat-min-similarity",
			Usage:       "Minimum cosine similarity for chat context",
			Value:       defaults.ChatMinSimilarity,
			Sources:     cli.EnvVars("SANCTUM_CHAT_MIN_SIMILARITY"),
			Destination: &r.chatMinSim,
		},
		&cli.IntFlag{
			Name:        "diary-top-k",
			Usage:       "Maximum related diary entries returned",
			Value:       defaults.DiaryTopK,
			Sources:     cli.EnvVars("SANCTUM_DIARY_TOP_K"),
			Destination: &r.diaryTopK,
		},
		&cli.FloatFlag{
			Name:        "diary-min-similarity",
			Usage:       "Minimum cosine similarity for related diary entries",
			Value:       defaults.DiaryMinSimilarity,
			Sources:     cli.EnvVars("SANCTUM_DIARY_MIN_SIMILARITY"),
			Destination: &r.diaryMinSim,
		},
		&cli.BoolFlag{
			Name:        "retrieval-dedupe",
			Usage:       "Drop context records whose text duplicates a higher-ranked one",
			Sources:     cli.EnvVars("SANCTUM_RETRIEVAL_DEDUPE"),
			Destination: &r.dedupe,
		},
	}
}

// PoolSize returns the configured candidate pool size
func (r *Retrieval) PoolSize() int {
	return r.poolSize
}

// Dedupe reports whether context deduplication is enabled
func (r *Retrieval) Dedupe() bool {
	return r.dedupe
}

// Config converts the flags into the usecase retrieval configuration
func (r *Retrieval) Config() usecase.RetrievalConfig {
	return usecase.RetrievalConfig{
		ChatTopK:           r.chatTopK,
		ChatMinSimilarity:  r.chatMinSim,
		DiaryTopK:          r.diaryTopK,
		DiaryMinSimilarity: r.diaryMinSim,
	}
}
