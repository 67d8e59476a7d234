package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// CodeHallucination grades whether code in the response is fabricated rather
// than grounded in the retrieved context.
type CodeHallucination struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ResponseColumn string `json:"response_column" validate:"required"`
	ContextColumn  string `json:"context_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewCodeHallucination returns the operator with default column names.
func NewCodeHallucination() *CodeHallucination {
	return &CodeHallucination{
		QuestionColumn: ColQuestion,
		ResponseColumn: ColResponse,
		ContextColumn:  ColContext,
		OutputColumn:   ScoreCodeHallucination,
	}
}

func (o *CodeHallucination) Name() string { return "code_hallucination" }

func (o *CodeHallucination) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *CodeHallucination) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricCodeHallucination,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldResponse: o.ResponseColumn,
			FieldContext:  o.ContextColumn,
		},
		outputs: map[string]string{ScoreCodeHallucination: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}
