package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repository implementations when a requested
// record does not exist
var ErrNotFound = goerr.New("record not found")

// Repository is the aggregated persistence interface. Implementations live in
// pkg/repository/firestore (production) and pkg/repository/memory (dev/tests).
type Repository interface {
	Message() MessageRepository
	Diary() DiaryRepository
	Tarot() TarotRepository
	Close() error
}
