package check

import (
	"github.com/ahrav/go-evalcheck/operator"
	"github.com/ahrav/go-evalcheck/plot"
)

// Built-in checks for common LLM evaluation tasks. Each wraps a single
// operator with a histogram over its score column(s).

// ContextRelevance checks how relevant the retrieved context is to the
// question.
func ContextRelevance() Check {
	return New("score_context_relevance",
		[]operator.Operator{operator.NewContextRelevance()},
		[]plot.Spec{plot.Histogram(operator.ScoreContextRelevance)},
	)
}

// ResponseFacts checks how factually grounded the response is in the
// context.
func ResponseFacts() Check {
	return New("score_factual_accuracy",
		[]operator.Operator{operator.NewFactualAccuracy()},
		[]plot.Spec{plot.Histogram(operator.ScoreFactualAccuracy)},
	)
}

// ResponseCompleteness checks how completely the response answers the
// question.
func ResponseCompleteness() Check {
	return New("response_completeness_score",
		[]operator.Operator{operator.NewResponseCompleteness()},
		[]plot.Spec{plot.Histogram(operator.ScoreResponseCompleteness)},
	)
}

// ResponseCompletenessWrtContext checks response completeness given only the
// retrieved context.
func ResponseCompletenessWrtContext() Check {
	return New("response_completeness_wrt_context_score",
		[]operator.Operator{operator.NewResponseCompletenessWrtContext()},
		[]plot.Spec{plot.Histogram(operator.ScoreResponseCompletenessWrtCtx)},
	)
}

// ResponseRelevance checks how relevant the response is to the question.
func ResponseRelevance() Check {
	return New("response_relevance_score",
		[]operator.Operator{operator.NewResponseRelevance()},
		[]plot.Spec{plot.Histogram(operator.ScoreResponseRelevance)},
	)
}

// ResponseConsistency checks how consistent the response is with question
// and context.
func ResponseConsistency() Check {
	return New("response_consistency_score",
		[]operator.Operator{operator.NewResponseConsistency()},
		[]plot.Spec{plot.Histogram(operator.ScoreResponseConsistency)},
	)
}

// ValidResponse checks that the response is a real answer rather than a
// refusal.
func ValidResponse() Check {
	return New("valid_response_score",
		[]operator.Operator{operator.NewValidResponse()},
		[]plot.Spec{plot.Histogram(operator.ScoreValidResponse)},
	)
}

// ResponseConciseness checks how concise the response is.
func ResponseConciseness() Check {
	return New("response_conciseness_score",
		[]operator.Operator{operator.NewResponseConciseness()},
		[]plot.Spec{plot.Histogram(operator.ScoreResponseConciseness)},
	)
}

// ResponseMatching checks the response against the gold response using the
// given matching method. The score lands in "<method>_score".
func ResponseMatching(method string) Check {
	op := operator.NewResponseMatching()
	op.Method = method
	op.OutputColumn = method + "_score"
	return New(method+"_score",
		[]operator.Operator{op},
		[]plot.Spec{plot.Histogram(op.OutputColumn)},
	)
}

// LanguageQuality checks fluency, coherence, politeness, and grammar of the
// response.
func LanguageQuality() Check {
	return New("language_critique_score",
		[]operator.Operator{operator.NewLanguageCritique()},
		[]plot.Spec{
			plot.Histogram(operator.ScoreFluency),
			plot.Histogram(operator.ScoreCoherence),
			plot.Histogram(operator.ScorePoliteness),
			plot.Histogram(operator.ScoreGrammar),
		},
	)
}

// ToneQuality checks whether the response's tone matches the given persona.
func ToneQuality(llmPersona string) Check {
	op := operator.NewToneCritique()
	op.LLMPersona = llmPersona
	return New("tone_critique_score",
		[]operator.Operator{op},
		[]plot.Spec{plot.Histogram(operator.ScoreTone)},
	)
}

// GuidelineAdherence checks the response against a free-form guideline.
// responseSchema may be empty.
func GuidelineAdherence(guideline, guidelineName, responseSchema string) Check {
	op := operator.NewGuidelineAdherence()
	op.Guideline = guideline
	if guidelineName != "" {
		op.GuidelineName = guidelineName
	}
	op.ResponseSchema = responseSchema
	return New(op.GuidelineName+"_adherence_score",
		[]operator.Operator{op},
		[]plot.Spec{plot.Histogram(op.OutputColumns()[0])},
	)
}

// PromptInjection checks whether the question tries to hijack the model.
func PromptInjection() Check {
	return New("prompt_injection_score",
		[]operator.Operator{operator.NewPromptInjection()},
		[]plot.Spec{plot.Histogram(operator.ScorePromptInjection)},
	)
}

// JailbreakDetection checks whether the question tries to push the model
// outside its purpose.
func JailbreakDetection() Check {
	return New("jailbreak_detection_score",
		[]operator.Operator{operator.NewJailbreakDetection()},
		[]plot.Spec{plot.Histogram(operator.ScoreJailbreakAttempted)},
	)
}

// ConversationSatisfaction checks user satisfaction across a multi-turn
// conversation. llmPersona may be empty.
func ConversationSatisfaction(userPersona, llmPersona string) Check {
	op := operator.NewConversationSatisfaction()
	if userPersona != "" {
		op.UserPersona = userPersona
	}
	op.LLMPersona = llmPersona
	return New("conversation_satisfaction_score",
		[]operator.Operator{op},
		[]plot.Spec{plot.Histogram(operator.ScoreConversationSatisfaction)},
	)
}

// CodeHallucination checks whether code in the response is fabricated.
func CodeHallucination() Check {
	return New("code_hallucination_score",
		[]operator.Operator{operator.NewCodeHallucination()},
		[]plot.Spec{plot.Histogram(operator.ScoreCodeHallucination)},
	)
}

// Builtins returns every parameterless built-in check, keyed by check name.
// Parameterized checks (ResponseMatching, ToneQuality, GuidelineAdherence,
// ConversationSatisfaction) need arguments and are constructed directly.
func Builtins() map[string]Check {
	checks := []Check{
		ContextRelevance(),
		ResponseFacts(),
		ResponseCompleteness(),
		ResponseCompletenessWrtContext(),
		ResponseRelevance(),
		ResponseConsistency(),
		ValidResponse(),
		ResponseConciseness(),
		LanguageQuality(),
		PromptInjection(),
		JailbreakDetection(),
		CodeHallucination(),
	}
	out := make(map[string]Check, len(checks))
	for _, c := range checks {
		out[c.Name] = c
	}
	return out
}
