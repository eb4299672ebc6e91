package types

import "github.com/m-mizutani/goerr/v2"

// TarotMode represents the layout of a three-card tarot spread
type TarotMode string

const (
	TarotModePastPresentFuture      TarotMode = "past-present-future"
	TarotModeSituationAdviceOutcome TarotMode = "situation-advice-outcome"
)

// AllTarotModes returns all valid tarot spread modes
func AllTarotModes() []TarotMode {
	return []TarotMode{
		TarotModePastPresentFuture,
		TarotModeSituationAdviceOutcome,
	}
}

// IsValid checks if the tarot mode is valid
func (m TarotMode) IsValid() bool {
	switch m {
	case TarotModePastPresentFuture,
		TarotModeSituationAdviceOutcome:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tarot mode
func (m TarotMode) String() string {
	return string(m)
}

// ParseTarotMode parses a string into a TarotMode
func ParseTarotMode(s string) (TarotMode, error) {
	mode := TarotMode(s)
	if !mode.IsValid() {
		return "", goerr.New("invalid tarot mode", goerr.V("mode", s))
	}
	return mode, nil
}

// TarotTopic represents the subject area of a tarot question
type TarotTopic string

const (
	TarotTopicLove    TarotTopic = "love"
	TarotTopicMoney   TarotTopic = "money"
	TarotTopicStudy   TarotTopic = "study"
	TarotTopicCareer  TarotTopic = "career"
	TarotTopicHealth  TarotTopic = "health"
	TarotTopicGeneral TarotTopic = "general"
)

// AllTarotTopics returns all valid tarot topics
func AllTarotTopics() []TarotTopic {
	return []TarotTopic{
		TarotTopicLove,
		TarotTopicMoney,
		TarotTopicStudy,
		TarotTopicCareer,
		TarotTopicHealth,
		TarotTopicGeneral,
	}
}

// IsValid checks if the tarot topic is valid
func (t TarotTopic) IsValid() bool {
	switch t {
	case TarotTopicLove,
		TarotTopicMoney,
		TarotTopicStudy,
		TarotTopicCareer,
		TarotTopicHealth,
		TarotTopicGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tarot topic
func (t TarotTopic) String() string {
	return string(t)
}

// ParseTarotTopic parses a string into a TarotTopic
func ParseTarotTopic(s string) (TarotTopic, error) {
	topic := TarotTopic(s)
	if !topic.IsValid() {
		return "", goerr.New("invalid tarot topic", goerr.V("topic", s))
	}
	return topic, nil
}
