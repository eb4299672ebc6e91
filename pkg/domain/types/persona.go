package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// PersonaID identifies a companion personality (e.g. "energetic", "logical", "calm").
// Chat messages are tagged with the persona they were exchanged with, and
// retrieval is scoped to the active persona.
type PersonaID string

var personaIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the PersonaID is valid
func (p PersonaID) Validate() error {
	if p == "" {
		return goerr.New("persona ID cannot be empty")
	}
	if !personaIDPattern.MatchString(string(p)) {
		return goerr.New("persona ID must be lowercase alphanumeric with hyphens", goerr.V("id", p))
	}
	return nil
}

// String returns the string representation of PersonaID
func (p PersonaID) String() string {
	return string(p)
}
