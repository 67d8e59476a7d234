package operator

// Default table column names. Every operator reads these unless its
// configuration points it at differently named columns.
const (
	ColQuestion     = "question"
	ColResponse     = "response"
	ColContext      = "context"
	ColConversation = "conversation"
	ColGroundTruth  = "ground_truth"
)

// Canonical request field names. Whatever the table's columns are called,
// records cross the evaluation boundary under these fixed keys.
const (
	FieldQuestion     = "question"
	FieldResponse     = "response"
	FieldContext      = "context"
	FieldConversation = "conversation"
	FieldGroundTruth  = "ground_truth"
)

// Remote metric identifiers.
const (
	MetricFactualAccuracy            = "factual_accuracy"
	MetricResponseCompleteness       = "response_completeness"
	MetricResponseCompletenessWrtCtx = "response_completeness_wrt_context"
	MetricContextRelevance           = "context_relevance"
	MetricResponseRelevance          = "response_relevance"
	MetricResponseConciseness        = "response_conciseness"
	MetricResponseConsistency        = "response_consistency"
	MetricValidResponse              = "valid_response"
	MetricResponseMatching           = "response_matching"
	MetricLanguageCritique           = "language_critique"
	MetricToneCritique               = "tone_critique"
	MetricGuidelineAdherence         = "guideline_adherence"
	MetricPromptInjection            = "prompt_injection"
	MetricJailbreakDetection         = "jailbreak_detection"
	MetricConversationSatisfaction   = "conversation_satisfaction"
	MetricCodeHallucination          = "code_hallucination"
)

// Canonical score field names returned by the scoring service, and the
// default output column names derived from them.
const (
	ScoreFactualAccuracy            = "score_factual_accuracy"
	ScoreResponseCompleteness       = "score_response_completeness"
	ScoreResponseCompletenessWrtCtx = "score_response_completeness_wrt_context"
	ScoreContextRelevance           = "score_context_relevance"
	ScoreResponseRelevance          = "score_response_relevance"
	ScoreResponseConciseness        = "score_response_conciseness"
	ScoreResponseConsistency        = "score_response_consistency"
	ScoreValidResponse              = "score_valid_response"
	ScoreResponseMatch              = "score_response_match"
	ScoreFluency                    = "score_fluency"
	ScoreCoherence                  = "score_coherence"
	ScorePoliteness                 = "score_politeness"
	ScoreGrammar                    = "score_grammar"
	ScoreTone                       = "score_tone"
	ScoreGuidelineAdherence         = "score_guideline_adherence"
	ScorePromptInjection            = "score_prompt_injection"
	ScoreJailbreakAttempted         = "score_jailbreak_attempted"
	ScoreConversationSatisfaction   = "score_conversation_satisfaction"
	ScoreCodeHallucination          = "score_code_hallucination"
)

// Metric parameter keys.
const (
	ParamScenarioDescription = "scenario_description"
	ParamMethod              = "method"
	ParamUserPersona         = "user_persona"
	ParamLLMPersona          = "llm_persona"
	ParamGuideline           = "guideline"
	ParamGuidelineName       = "guideline_name"
	ParamResponseSchema      = "response_schema"
	ParamModelPurpose        = "model_purpose"
)
