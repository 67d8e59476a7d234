package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// FactualAccuracy grades how factually grounded the generated response is
// in the retrieved context.
//
// Reads the question, context, and response columns; writes a single
// factual-accuracy score column.
type FactualAccuracy struct {
	// QuestionColumn names the table column holding the questions.
	QuestionColumn string `json:"question_column" validate:"required"`

	// ContextColumn names the table column holding the retrieved context.
	ContextColumn string `json:"context_column" validate:"required"`

	// ResponseColumn names the table column holding the generated responses.
	ResponseColumn string `json:"response_column" validate:"required"`

	// OutputColumn names the column the score is written to.
	OutputColumn string `json:"output_column" validate:"required"`

	// ScenarioDescription optionally describes the evaluation scenario to
	// the scoring service.
	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewFactualAccuracy returns the operator with default column names.
func NewFactualAccuracy() *FactualAccuracy {
	return &FactualAccuracy{
		QuestionColumn: ColQuestion,
		ContextColumn:  ColContext,
		ResponseColumn: ColResponse,
		OutputColumn:   ScoreFactualAccuracy,
	}
}

func (o *FactualAccuracy) Name() string { return "factual_accuracy" }

func (o *FactualAccuracy) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *FactualAccuracy) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricFactualAccuracy,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldContext:  o.ContextColumn,
			FieldResponse: o.ResponseColumn,
		},
		outputs: map[string]string{ScoreFactualAccuracy: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}

// ContextRelevance grades how relevant the retrieved context is to the
// question asked.
type ContextRelevance struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ContextColumn  string `json:"context_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewContextRelevance returns the operator with default column names.
func NewContextRelevance() *ContextRelevance {
	return &ContextRelevance{
		QuestionColumn: ColQuestion,
		ContextColumn:  ColContext,
		OutputColumn:   ScoreContextRelevance,
	}
}

func (o *ContextRelevance) Name() string { return "context_relevance" }

func (o *ContextRelevance) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ContextRelevance) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricContextRelevance,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldContext:  o.ContextColumn,
		},
		outputs: map[string]string{ScoreContextRelevance: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}

// ResponseCompletenessWrtContext grades how completely the response answers
// the question given only the information available in the context.
type ResponseCompletenessWrtContext struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ResponseColumn string `json:"response_column" validate:"required"`
	ContextColumn  string `json:"context_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewResponseCompletenessWrtContext returns the operator with default
// column names.
func NewResponseCompletenessWrtContext() *ResponseCompletenessWrtContext {
	return &ResponseCompletenessWrtContext{
		QuestionColumn: ColQuestion,
		ResponseColumn: ColResponse,
		ContextColumn:  ColContext,
		OutputColumn:   ScoreResponseCompletenessWrtCtx,
	}
}

func (o *ResponseCompletenessWrtContext) Name() string {
	return "response_completeness_wrt_context"
}

func (o *ResponseCompletenessWrtContext) OutputColumns() []string {
	return []string{o.OutputColumn}
}

func (o *ResponseCompletenessWrtContext) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricResponseCompletenessWrtCtx,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldResponse: o.ResponseColumn,
			FieldContext:  o.ContextColumn,
		},
		outputs: map[string]string{ScoreResponseCompletenessWrtCtx: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}
