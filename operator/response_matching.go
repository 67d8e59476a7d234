package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// Matching methods accepted by the response-matching metric.
const (
	MatchExact = "exact"
	MatchRouge = "rouge"
	MatchLLM   = "llm"
)

// ResponseMatching compares the generated response against a gold response
// using the configured matching method.
//
// Method must be one of MatchExact, MatchRouge, or MatchLLM; anything else
// fails Bind with a *ConfigError before any network interaction.
type ResponseMatching struct {
	QuestionColumn    string `json:"question_column" validate:"required"`
	ResponseColumn    string `json:"response_column" validate:"required"`
	GroundTruthColumn string `json:"ground_truth_column" validate:"required"`
	OutputColumn      string `json:"output_column" validate:"required"`

	// Method selects how the two responses are compared.
	Method string `json:"method" validate:"required,oneof=exact rouge llm"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewResponseMatching returns the operator with default column names and
// LLM-based matching.
func NewResponseMatching() *ResponseMatching {
	return &ResponseMatching{
		QuestionColumn:    ColQuestion,
		ResponseColumn:    ColResponse,
		GroundTruthColumn: ColGroundTruth,
		OutputColumn:      ScoreResponseMatch,
		Method:            MatchLLM,
	}
}

func (o *ResponseMatching) Name() string { return "response_matching" }

func (o *ResponseMatching) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ResponseMatching) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricResponseMatching,
		inputs: map[string]string{
			FieldQuestion:    o.QuestionColumn,
			FieldResponse:    o.ResponseColumn,
			FieldGroundTruth: o.GroundTruthColumn,
		},
		outputs: map[string]string{ScoreResponseMatch: o.OutputColumn},
		params: map[string]any{
			ParamMethod:              o.Method,
			ParamScenarioDescription: o.ScenarioDescription,
		},
	})
}
