package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// ConversationSatisfaction grades how satisfied the user appears over the
// course of a multi-turn conversation.
//
// The conversation column holds the full turn list for each row; the scoring
// service receives it under the canonical "conversation" field regardless of
// the source column name.
type ConversationSatisfaction struct {
	ConversationColumn string `json:"conversation_column" validate:"required"`
	OutputColumn       string `json:"output_column" validate:"required"`

	// UserPersona names the role whose satisfaction is being graded.
	UserPersona string `json:"user_persona" validate:"required"`

	// LLMPersona optionally names the assistant role in the transcript.
	LLMPersona string `json:"llm_persona,omitempty"`
}

// NewConversationSatisfaction returns the operator with default column names
// and the generic "user" persona.
func NewConversationSatisfaction() *ConversationSatisfaction {
	return &ConversationSatisfaction{
		ConversationColumn: ColConversation,
		OutputColumn:       ScoreConversationSatisfaction,
		UserPersona:        "user",
	}
}

func (o *ConversationSatisfaction) Name() string { return "conversation_satisfaction" }

func (o *ConversationSatisfaction) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ConversationSatisfaction) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric:  MetricConversationSatisfaction,
		inputs:  map[string]string{FieldConversation: o.ConversationColumn},
		outputs: map[string]string{ScoreConversationSatisfaction: o.OutputColumn},
		params: map[string]any{
			ParamUserPersona: o.UserPersona,
			ParamLLMPersona:  o.LLMPersona,
		},
	})
}
