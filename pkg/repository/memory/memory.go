package memory

import (
	"github.com/emotion-sanctuary/sanctum/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is an in-memory implementation of interfaces.Repository for
// development and tests.
type Memory struct {
	message *messageRepository
	diary   *diaryRepository
	tarot   *tarotRepository
}

var _ interfaces.Repository = &Memory{}

// New creates an in-memory repository
func New() *Memory {
	return &Memory{
		message: newMessageRepository(),
		diary:   newDiaryRepository(),
		tarot:   newTarotRepository(),
	}
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.message
}

func (m *Memory) Diary() interfaces.DiaryRepository {
	return m.diary
}

func (m *Memory) Tarot() interfaces.TarotRepository {
	return m.tarot
}

func (m *Memory) Close() error {
	return nil
}
