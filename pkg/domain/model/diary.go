package model

import (
	"time"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MaxDiaryContentLength is the maximum length of diary content in characters (runes)
const MaxDiaryContentLength = 500

// DiaryID is a UUID-based identifier for DiaryEntry
type DiaryID string

// NewDiaryID generates a new UUID v4 DiaryID
func NewDiaryID() DiaryID {
	return DiaryID(uuid.New().String())
}

// DiaryEntry represents a single emotional diary entry.
// The embedding is computed from Content when the entry is created and
// regenerated when Content is edited.
type DiaryEntry struct {
	ID        DiaryID
	UserID    string
	Date      string // calendar date in YYYY-MM-DD
	Title     string
	Mood      types.Mood
	Content   string
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the entry's user-supplied fields
func (d *DiaryEntry) Validate() error {
	if d.Date == "" {
		return goerr.New("diary date is required")
	}
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return goerr.Wrap(err, "diary date must be YYYY-MM-DD", goerr.V("date", d.Date))
	}
	if !d.Mood.IsValid() {
		return goerr.New("invalid mood value", goerr.V("mood", d.Mood))
	}
	if d.Content == "" {
		return goerr.New("diary content is required")
	}
	if len([]rune(d.Content)) > MaxDiaryContentLength {
		return goerr.New("diary content exceeds maximum length",
			goerr.V("length", len([]rune(d.Content))),
			goerr.V("max", MaxDiaryContentLength),
		)
	}
	return nil
}

// ToEmbeddedRecord converts the entry into the retrieval candidate form.
// Diary entries carry no persona tag.
func (d *DiaryEntry) ToEmbeddedRecord() EmbeddedRecord {
	return EmbeddedRecord{
		ID:        string(d.ID),
		Text:      d.Content,
		Role:      types.RoleUser,
		Embedding: d.Embedding,
		CreatedAt: d.CreatedAt,
	}
}
