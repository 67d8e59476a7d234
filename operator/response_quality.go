package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// ResponseCompleteness grades how completely the generated response answers
// the question asked.
type ResponseCompleteness struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ResponseColumn string `json:"response_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewResponseCompleteness returns the operator with default column names.
func NewResponseCompleteness() *ResponseCompleteness {
	return &ResponseCompleteness{
		QuestionColumn: ColQuestion,
		ResponseColumn: ColResponse,
		OutputColumn:   ScoreResponseCompleteness,
	}
}

func (o *ResponseCompleteness) Name() string { return "response_completeness" }

func (o *ResponseCompleteness) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ResponseCompleteness) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricResponseCompleteness,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldResponse: o.ResponseColumn,
		},
		outputs: map[string]string{ScoreResponseCompleteness: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}

// ResponseRelevance grades how relevant the generated response is to the
// question, penalizing irrelevant additional information.
type ResponseRelevance struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ResponseColumn string `json:"response_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewResponseRelevance returns the operator with default column names.
func NewResponseRelevance() *ResponseRelevance {
	return &ResponseRelevance{
		QuestionColumn: ColQuestion,
		ResponseColumn: ColResponse,
		OutputColumn:   ScoreResponseRelevance,
	}
}

func (o *ResponseRelevance) Name() string { return "response_relevance" }

func (o *ResponseRelevance) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ResponseRelevance) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricResponseRelevance,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldResponse: o.ResponseColumn,
		},
		outputs: map[string]string{ScoreResponseRelevance: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}

// ResponseConciseness grades how concise the generated response is for the
// question asked.
type ResponseConciseness struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ResponseColumn string `json:"response_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewResponseConciseness returns the operator with default column names.
func NewResponseConciseness() *ResponseConciseness {
	return &ResponseConciseness{
		QuestionColumn: ColQuestion,
		ResponseColumn: ColResponse,
		OutputColumn:   ScoreResponseConciseness,
	}
}

func (o *ResponseConciseness) Name() string { return "response_conciseness" }

func (o *ResponseConciseness) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ResponseConciseness) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricResponseConciseness,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldResponse: o.ResponseColumn,
		},
		outputs: map[string]string{ScoreResponseConciseness: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}

// ResponseConsistency grades how consistent the response is with the
// question and the retrieved context.
type ResponseConsistency struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ResponseColumn string `json:"response_column" validate:"required"`
	ContextColumn  string `json:"context_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewResponseConsistency returns the operator with default column names.
func NewResponseConsistency() *ResponseConsistency {
	return &ResponseConsistency{
		QuestionColumn: ColQuestion,
		ResponseColumn: ColResponse,
		ContextColumn:  ColContext,
		OutputColumn:   ScoreResponseConsistency,
	}
}

func (o *ResponseConsistency) Name() string { return "response_consistency" }

func (o *ResponseConsistency) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ResponseConsistency) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricResponseConsistency,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldResponse: o.ResponseColumn,
			FieldContext:  o.ContextColumn,
		},
		outputs: map[string]string{ScoreResponseConsistency: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}

// ValidResponse checks whether the response is a real answer rather than a
// refusal or filler.
type ValidResponse struct {
	ResponseColumn string `json:"response_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	ScenarioDescription string `json:"scenario_description,omitempty"`
}

// NewValidResponse returns the operator with default column names.
func NewValidResponse() *ValidResponse {
	return &ValidResponse{
		ResponseColumn: ColResponse,
		OutputColumn:   ScoreValidResponse,
	}
}

func (o *ValidResponse) Name() string { return "valid_response" }

func (o *ValidResponse) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *ValidResponse) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric:  MetricValidResponse,
		inputs:  map[string]string{FieldResponse: o.ResponseColumn},
		outputs: map[string]string{ScoreValidResponse: o.OutputColumn},
		params:  map[string]any{ParamScenarioDescription: o.ScenarioDescription},
	})
}
