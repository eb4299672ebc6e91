package config

import (
	"os"

	"github.com/emotion-sanctuary/sanctum/pkg/domain/model"
	"github.com/emotion-sanctuary/sanctum/pkg/domain/types"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Personas holds CLI flags for the companion persona configuration
type Personas struct {
	path string
}

// personaFile is the TOML schema for a persona config file
type personaFile struct {
	Personas []personaEntry `toml:"persona"`
}

type personaEntry struct {
	ID           string `toml:"id"`
	Name         string `toml:"name"`
	Description  string `toml:"description"`
	Greeting     string `toml:"greeting"`
	SystemPrompt string `toml:"system_prompt"`
}

// Flags returns CLI flags for persona configuration
func (p *Personas) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "personas",
			Usage:       "Path to persona TOML config (built-in personas when omitted)",
			Sources:     cli.EnvVars("SANCTUM_PERSONAS"),
			Destination: &p.path,
		},
	}
}

// Configure loads the persona registry from the configured file, or the
// built-in personas when no file is given
func (p *Personas) Configure() (*model.PersonaRegistry, error) {
	if p.path == "" {
		logging.Default().Info("Using built-in personas")
		return model.NewPersonaRegistry(defaultPersonas())
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read persona config", goerr.V("path", p.path))
	}

	var file personaFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse persona config", goerr.V("path", p.path))
	}
	if len(file.Personas) == 0 {
		return nil, goerr.New("persona config defines no personas", goerr.V("path", p.path))
	}

	personas := make([]*model.Persona, 0, len(file.Personas))
	for _, e := range file.Personas {
		personas = append(personas, &model.Persona{
			ID:           types.PersonaID(e.ID),
			Name:         e.Name,
			Description:  e.Description,
			Greeting:     e.Greeting,
			SystemPrompt: e.SystemPrompt,
		})
	}

	logging.Default().Info("Loaded personas", "path", p.path, "count", len(personas))
	return model.NewPersonaRegistry(personas)
}

func defaultPersonas() []*model.Persona {
	return []*model.Persona{
		{
			ID:          "energetic",
			Name:        "Sol",
			Description: "A cheerful companion who lifts your spirits",
			Greeting:    "Hey! So glad you're here. What's going on today?",
			SystemPrompt: "You are Sol, an upbeat and energetic companion. " +
				"You respond with warmth and enthusiasm, celebrate small wins, " +
				"and gently encourage the user to look for bright spots without " +
				"dismissing their feelings. Keep replies short and conversational.",
		},
		{
			ID:          "logical",
			Name:        "Sage",
			Description: "A clear-headed companion who helps you think things through",
			Greeting:    "Hello. Tell me what's on your mind and let's sort it out together.",
			SystemPrompt: "You are Sage, a calm and analytical companion. " +
				"You help the user untangle their thoughts, ask clarifying questions, " +
				"and offer structured perspectives while staying kind and non-judgmental. " +
				"Keep replies short and conversational.",
		},
		{
			ID:          "calm",
			Name:        "Luna",
			Description: "A gentle companion who listens without judgment",
			Greeting:    "Take a breath. I'm here, and there's no rush.",
			SystemPrompt: "You are Luna, a gentle and soothing companion. " +
				"You listen patiently, validate the user's feelings, and respond " +
				"with quiet reassurance. You never push; you simply stay present. " +
				"Keep replies short and conversational.",
		},
	}
}
