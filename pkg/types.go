package pkg

import "time"

// SafetyLevel is the outcome of the keyword-based safety layer.  Levels
// are ordered: emergency takes precedence over warning, which takes
// precedence over safe.
type SafetyLevel string

const (
	LevelSafe      SafetyLevel = "safe"
	LevelWarning   SafetyLevel = "warning"
	LevelEmergency SafetyLevel = "emergency"
)

// SafetyResult pairs the detected level with a fixed, human-readable
// explanation tied to the rule that fired.  The message never contains
// user input.
type SafetyResult struct {
	Level   SafetyLevel `json:"level"`
	Message string      `json:"message"`
}

// TaskType selects which instruction template the prompt builder uses.
// Unrecognized values fall back to a generic template rather than failing.
type TaskType string

const (
	TaskMedicalQA TaskType = "medical_qa"
	TaskDiagnosis TaskType = "diagnosis"
	TaskDrug      TaskType = "drug"
	TaskLab       TaskType = "lab"
	TaskEducation TaskType = "education"
)

// Language selects the output-language instruction and nothing else.
type Language string

const (
	LangChinese Language = "zh"
	LangEnglish Language = "en"
)

// AskRequest is the body of POST /api/ask.  TaskType defaults to
// medical_qa and Language to zh when omitted.  Temperature and MaxTokens
// are optional overrides for the model sampling parameters; out-of-range
// values are clamped, not rejected.
type AskRequest struct {
	Question    string   `json:"question"`
	TaskType    TaskType `json:"task_type,omitempty"`
	Language    Language `json:"language,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// SeverityInfo is the structured risk assessment parsed from the model's
// trailing JSON block.  Every field is independently optional: a partial
// or malformed block degrades field-by-field instead of failing the
// whole response.
type SeverityInfo struct {
	Severity          *string `json:"severity,omitempty"`
	RecommendedAction *string `json:"recommended_action,omitempty"`
	TimeWindow        *string `json:"time_window,omitempty"`
	RiskNotes         *string `json:"risk_notes,omitempty"`
}

// AskResponse is the body returned by POST /api/ask.  Severity is absent
// when the model produced no usable JSON block.  UsedPrompt is kept for
// audit and debugging; it is empty when the request short-circuited on an
// emergency classification and the LLM was never called.
type AskResponse struct {
	Answer     string        `json:"answer"`
	Safety     SafetyResult  `json:"safety"`
	Severity   *SeverityInfo `json:"severity,omitempty"`
	UsedPrompt string        `json:"used_prompt,omitempty"`
}

// Consultation is one completed /api/ask exchange as recorded in the
// audit store.  Severity holds the parsed severity grade when the model
// supplied one.
type Consultation struct {
	ID            string      `json:"id"`
	Question      string      `json:"question"`
	TaskType      TaskType    `json:"task_type"`
	Language      Language    `json:"language"`
	SafetyLevel   SafetyLevel `json:"safety_level"`
	SafetyMessage string      `json:"safety_message"`
	Answer        string      `json:"answer"`
	Severity      *string     `json:"severity,omitempty"`
	LatencyMs     int         `json:"latency_ms"`
	CreatedAt     time.Time   `json:"created_at"`
}
