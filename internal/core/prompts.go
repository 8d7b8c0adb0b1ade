package core

// prompts.go defines the instruction templates used to build the LLM
// prompt.  Keeping them in a separate file makes them easy to tweak
// without touching the pipeline code.  The structured-output marker and
// the schema field names are load-bearing: parse.go depends on them
// syntactically.

import (
	"fmt"

	"medassist/pkg"
)

// JSONMarker separates the human-readable answer from the trailing
// single-line JSON risk block in the model's reply.
const JSONMarker = "###JSON###"

// baseSystemPrompt describes the assistant's persona and hard limits.
// It is prepended to every prompt regardless of task type.
const baseSystemPrompt = `You are a cautious, evidence-informed medical-style assistant
powered by a general large language model.
You are NOT a doctor and you cannot make definitive diagnoses or prescribe medications.

You must always:
- Emphasize that your answer is general information, not medical advice.
- Encourage the user to see a healthcare professional for any serious or persistent symptoms.
- Be concise, well-structured, and easy to understand.
- Never invent lab values, medications, or detailed treatment plans.`

// severityInstruction tells the model to end its reply with the marker
// token and a single-line JSON object matching the SeverityInfo schema.
const severityInstruction = `After you finish the full human-readable answer, on a new line output:
` + JSONMarker + ` followed by a single-line JSON object with this exact schema:

{
  "severity": "low" | "moderate" | "high",
  "recommended_action": "self_care" | "outpatient" | "emergency",
  "time_window": "short free-text description of when the user should seek care",
  "risk_notes": "one short sentence summarizing why you chose this severity"
}

Do NOT explain the JSON. Do NOT add extra text after the JSON. The JSON must be valid.`

const (
	langInstructionZH = "Please answer in Simplified Chinese (简体中文), unless the user clearly uses another language."
	langInstructionEN = "Please answer in English."
)

// taskInstructions maps each task type to its instruction block.
// Unknown task types fall back to genericTaskInstruction.
var taskInstructions = map[pkg.TaskType]string{
	pkg.TaskMedicalQA: "Task: Provide general medical information and suggestions based on the user's question. " +
		"Focus on explaining possible causes, typical work-up, and when to see a doctor.",
	pkg.TaskDiagnosis: "Task: Provide diagnostic-style reasoning (chain-of-thought). Explain possible causes " +
		"and differential diagnoses, but clearly state that this is NOT a formal diagnosis and " +
		"that only a licensed clinician can diagnose and treat.",
	pkg.TaskDrug: "Task: Provide information about medications (indications, common side effects, " +
		"precautions, interactions). Do NOT prescribe any medications. Always remind the user " +
		"to consult a doctor or pharmacist before taking or changing medicines.",
	pkg.TaskLab: "Task: Provide a general interpretation of lab or imaging results. Explain what the " +
		"values or findings might mean, possible causes, and when further evaluation is needed. " +
		"Do not make definitive diagnoses.",
	pkg.TaskEducation: "Task: Provide health education and lifestyle advice (prevention, long-term management, " +
		"self-care). Keep the advice practical, realistic, and conservative.",
}

const genericTaskInstruction = "Task: Provide general medical-style information based on the user's question."

// BuildPrompt composes the full prompt for one request.  It is pure: the
// same (taskType, question, language) triple always yields the same
// string.  The user question is quoted so it cannot be confused with
// instruction text, and the prompt always ends with the exact
// structured-output directive.
func BuildPrompt(taskType pkg.TaskType, question string, language pkg.Language) string {
	langInstruction := langInstructionZH
	if language == pkg.LangEnglish {
		langInstruction = langInstructionEN
	}

	taskInstruction, ok := taskInstructions[taskType]
	if !ok {
		taskInstruction = genericTaskInstruction
	}

	return fmt.Sprintf(`%s

%s

%s

User question:
"""%s"""

Now provide your answer in a clear, structured format, with headings and bullet points when helpful.

%s
`, baseSystemPrompt, langInstruction, taskInstruction, question, severityInstruction)
}
