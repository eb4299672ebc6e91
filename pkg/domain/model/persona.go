package model

import (
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Persona is one companion personality: its display data and the system
// prompt sent to the chat model.
type Persona struct {
	ID           types.PersonaID
	Name         string
	Description  string
	Greeting     string // initial message shown when the persona is selected
	SystemPrompt string
}

// Validate checks the persona definition
func (p *Persona) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid persona ID")
	}
	if p.Name == "" {
		return goerr.New("persona name is required", goerr.V("id", p.ID))
	}
	if p.SystemPrompt == "" {
		return goerr.New("persona system prompt is required", goerr.V("id", p.ID))
	}
	return nil
}

// PersonaRegistry holds the configured personas keyed by ID
type PersonaRegistry struct {
	personas map[types.PersonaID]*Persona
	order    []types.PersonaID
}

// NewPersonaRegistry builds a registry from validated personas.
// Duplicate IDs are rejected.
func NewPersonaRegistry(personas []*Persona) (*PersonaRegistry, error) {
	reg := &PersonaRegistry{
		personas: make(map[types.PersonaID]*Persona, len(personas)),
	}
	for _, p := range personas {
		if err := p.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid persona")
		}
		if _, exists := reg.personas[p.ID]; exists {
			return nil, goerr.New("duplicate persona ID", goerr.V("id", p.ID))
		}
		reg.personas[p.ID] = p
		reg.order = append(reg.order, p.ID)
	}
	return reg, nil
}

// Get returns the persona for the ID, or nil when unknown
func (r *PersonaRegistry) Get(id types.PersonaID) *Persona {
	return r.personas[id]
}

// List returns all personas in configuration order
func (r *PersonaRegistry) List() []*Persona {
	result := make([]*Persona, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.personas[id])
	}
	return result
}
