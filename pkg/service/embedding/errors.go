package embedding

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the embedding adapter
var (
	// ErrInvalidInput is returned when the input text is empty after trimming
	ErrInvalidInput = goerr.New("embedding input text is empty")

	// ErrUnavailable is returned when every configured transport failed
	ErrUnavailable = goerr.New("embedding unavailable")
)
