package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// LanguageCritique grades the language quality of the response along four
// axes (fluency, coherence, politeness, grammar), each merged as its own
// score column.
type LanguageCritique struct {
	ResponseColumn string `json:"response_column" validate:"required"`

	// Output column names for the four sub-scores.
	FluencyColumn    string `json:"fluency_column" validate:"required"`
	CoherenceColumn  string `json:"coherence_column" validate:"required"`
	PolitenessColumn string `json:"politeness_column" validate:"required"`
	GrammarColumn    string `json:"grammar_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewLanguageCritique returns the operator with default column names.
func NewLanguageCritique() *LanguageCritique {
	return &LanguageCritique{
		ResponseColumn:   ColResponse,
		FluencyColumn:    ScoreFluency,
		CoherenceColumn:  ScoreCoherence,
		PolitenessColumn: ScorePoliteness,
		GrammarColumn:    ScoreGrammar,
	}
}

func (o *LanguageCritique) Name() string { return "language_critique" }

func (o *LanguageCritique) OutputColumns() []string {
	return []string{o.FluencyColumn, o.CoherenceColumn, o.PolitenessColumn, o.GrammarColumn}
}

func (o *LanguageCritique) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricLanguageCritique,
		inputs: map[string]string{FieldResponse: o.ResponseColumn},
		outputs: map[string]string{
			ScoreFluency:    o.FluencyColumn,
			ScoreCoherence:  o.CoherenceColumn,
			ScorePoliteness: o.PolitenessColumn,
			ScoreGrammar:    o.GrammarColumn,
		},
		params: map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}

// ToneCritique grades whether the response's tone matches the configured
// persona.
type ToneCritique struct {
	ResponseColumn string `json:"response_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	// LLMPersona is the persona the model was meant to respond as.
	LLMPersona string `json:"llm_persona" validate:"required"`
}

// NewToneCritique returns the operator with default column names and a
// neutral helpful-assistant persona.
func NewToneCritique() *ToneCritique {
	return &ToneCritique{
		ResponseColumn: ColResponse,
		OutputColumn:   ScoreTone,
		LLMPersona:     "helpful assistant",
	}
}

func (o *ToneCritique) Name() string { return "tone_critique" }

func (o *ToneCritique) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ToneCritique) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric:  MetricToneCritique,
		inputs:  map[string]string{FieldResponse: o.ResponseColumn},
		outputs: map[string]string{ScoreTone: o.OutputColumn},
		params:  map[string]any{ParamLLMPersona: o.LLMPersona},
	})
}
