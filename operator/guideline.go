package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// GuidelineAdherence grades whether the response follows a free-form
// guideline.
//
// When OutputColumn is empty, Bind derives it from GuidelineName as
// "score_<name>_adherence", so two guideline operators with distinct names
// can run in the same check without colliding.
type GuidelineAdherence struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	ResponseColumn string `json:"response_column" validate:"required"`
	OutputColumn   string `json:"output_column,omitempty"`

	// Guideline is the natural-language rule the response is graded against.
	Guideline string `json:"guideline" validate:"required"`

	// GuidelineName labels the guideline in the derived output column.
	GuidelineName string `json:"guideline_name" validate:"required"`

	// ResponseSchema optionally tells the scoring service how to parse
	// structured responses before grading.
	ResponseSchema string `json:"response_schema,omitempty"`
}

// NewGuidelineAdherence returns the operator with default column names.
// Guideline must be set before Bind.
func NewGuidelineAdherence() *GuidelineAdherence {
	return &GuidelineAdherence{
		QuestionColumn: ColQuestion,
		ResponseColumn: ColResponse,
		GuidelineName:  "guideline",
	}
}

func (o *GuidelineAdherence) Name() string { return "guideline_adherence" }

func (o *GuidelineAdherence) OutputColumns() []string {
	return []string{o.outputColumn()}
}

func (o *GuidelineAdherence) outputColumn() string {
	if o.OutputColumn != "" {
		return o.OutputColumn
	}
	return "score_" + o.GuidelineName + "_adherence"
}

func (o *GuidelineAdherence) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric: MetricGuidelineAdherence,
		inputs: map[string]string{
			FieldQuestion: o.QuestionColumn,
			FieldResponse: o.ResponseColumn,
		},
		outputs: map[string]string{ScoreGuidelineAdherence: o.outputColumn()},
		params: map[string]any{
			ParamGuideline:      o.Guideline,
			ParamGuidelineName:  o.GuidelineName,
			ParamResponseSchema: o.ResponseSchema,
		},
	})
}
