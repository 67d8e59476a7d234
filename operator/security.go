package operator

import (
	"github.com/ahrav/go-evalcheck"
)

// defaultModelPurpose is sent with jailbreak detection when the caller does
// not describe what the deployed model is supposed to do.
const defaultModelPurpose = "To help the user with its queries while " +
	"preventing responses for any illegal, immoral or abusive requests."

// PromptInjection grades whether the user prompt attempts to extract the
// system prompt or otherwise hijack the model.
type PromptInjection struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`
}

// NewPromptInjection returns the operator with default column names.
func NewPromptInjection() *PromptInjection {
	return &PromptInjection{
		QuestionColumn: ColQuestion,
		OutputColumn:   ScorePromptInjection,
	}
}

func (o *PromptInjection) Name() string { return "prompt_injection" }

func (o *PromptInjection) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *PromptInjection) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric:  MetricPromptInjection,
		inputs:  map[string]string{FieldQuestion: o.QuestionColumn},
		outputs: map[string]string{ScorePromptInjection: o.OutputColumn},
	})
}

// JailbreakDetection grades whether the user prompt tries to push the model
// outside its stated purpose.
type JailbreakDetection struct {
	QuestionColumn string `json:"question_column" validate:"required"`
	OutputColumn   string `json:"output_column" validate:"required"`

	// ModelPurpose describes what the deployed model is meant to do, so the
	// grader can judge whether the prompt strays from it.
	ModelPurpose string `json:"model_purpose" validate:"required"`
}

// NewJailbreakDetection returns the operator with default column names and a
// generic model purpose.
func NewJailbreakDetection() *JailbreakDetection {
	return &JailbreakDetection{
		QuestionColumn: ColQuestion,
		OutputColumn:   ScoreJailbreakAttempted,
		ModelPurpose:   defaultModelPurpose,
	}
}

func (o *JailbreakDetection) Name() string { return "jailbreak_detection" }

func (o *JailbreakDetection) OutputColumns() []string { return []string{o.OutputColumn} }

func (o *JailbreakDetection) Bind(settings *evalcheck.Settings) (Bound, error) {
	return bind(o, settings, binding{
		metric:  MetricJailbreakDetection,
		inputs:  map[string]string{FieldQuestion: o.QuestionColumn},
		outputs: map[string]string{ScoreJailbreakAttempted: o.OutputColumn},
		params:  map[string]any{ParamModelPurpose: o.ModelPurpose},
	})
}
