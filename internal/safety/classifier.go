// Package safety implements the keyword-based triage layer that runs on
// every question before any model is contacted.  It is a conservative
// textual heuristic, not a medical model: rules are tried in a fixed
// priority order and the first match decides the level.
package safety

import (
	"strings"

	"medassist/pkg"
)

// Keyword clusters.  The lists are bilingual (English + Simplified
// Chinese); all matching happens against lower-cased text, which leaves
// the Chinese terms untouched.
var (
	chestPainCues = []string{"chest pain", "胸痛"}

	radiatingCues = []string{
		"left arm", "jaw", "radiat", "back", "shoulder",
		"左臂", "下颌", "后背", "肩",
	}

	shortnessOfBreathCues = []string{
		"shortness of breath", "short of breath", "气短", "呼吸困难",
	}

	sweatingCues = []string{"sweating", "cold sweat", "大汗"}

	severeBreathingCues = []string{
		"can't breathe", "cannot breathe", "unable to breathe",
		"喘不过来", "呼吸不过来", "严重呼吸困难",
	}

	giBleedingCues = []string{
		"vomiting blood", "bloody vomit", "black stool", "tarry stool",
		"呕血", "黑便",
	}

	strokeCues = []string{
		"sudden weakness on one side", "face drooping", "slurred speech",
		"突然说不出话", "一侧肢体无力", "口角歪斜",
	}

	suicideCues = []string{
		"kill myself", "end my life", "suicide", "自杀", "想死",
	}

	warningCues = []string{
		"shortness of breath", "short of breath", "blood in stool",
		"black stool", "vomiting blood", "unintentional weight loss",
		"severe pain", "chest tightness",
		"气短", "便血", "体重下降", "胸闷",
	}
)

// rule is one cluster in the ordered cascade.  match receives the whole
// lower-cased text plus the individual sentences so clusters can choose
// their scope.
type rule struct {
	name    string
	level   pkg.SafetyLevel
	message string
	match   func(text string, sentences []string) bool
}

// rules are evaluated top to bottom; the first match wins.  Negation
// suppression applies only to the cardiac and GI-bleeding clusters, where
// a denied symptom ("no chest pain") would otherwise trigger a misleading
// emergency.  The remaining clusters skip the negation check on purpose:
// for breathing, stroke and suicidal-ideation cues the cost of a missed
// emergency outweighs a false alarm, and the warning cluster is meant to
// stay broad.
var rules = []rule{
	{
		name:    "cardiac",
		level:   pkg.LevelEmergency,
		message: "Detected severe chest pain with concerning features. Call emergency services immediately.",
		match:   matchCardiac,
	},
	{
		name:    "severe_breathing",
		level:   pkg.LevelEmergency,
		message: "Detected severe breathing difficulty. Call emergency services immediately.",
		match: func(text string, _ []string) bool {
			return containsAny(text, severeBreathingCues)
		},
	},
	{
		name:    "gi_bleeding",
		level:   pkg.LevelEmergency,
		message: "Detected possible gastrointestinal bleeding. Please seek emergency care immediately.",
		match:   matchGIBleeding,
	},
	{
		name:    "stroke",
		level:   pkg.LevelEmergency,
		message: "Detected possible stroke symptoms. Call emergency services immediately.",
		match: func(text string, _ []string) bool {
			return containsAny(text, strokeCues)
		},
	},
	{
		name:    "suicidal_ideation",
		level:   pkg.LevelEmergency,
		message: "Detected suicidal thoughts. Immediate help is required. Contact emergency services or a crisis hotline.",
		match: func(text string, _ []string) bool {
			return containsAny(text, suicideCues)
		},
	},
	{
		name:    "warning_symptoms",
		level:   pkg.LevelWarning,
		message: "Detected potentially concerning symptoms. Please seek medical evaluation soon.",
		match: func(text string, _ []string) bool {
			return containsAny(text, warningCues)
		},
	},
}

const safeMessage = "No emergency features detected. This tool provides general health information only."

// Check classifies raw question text into exactly one (level, message)
// pair.  It is pure and deterministic: the same text always yields the
// same result.
func Check(text string) pkg.SafetyResult {
	lower := strings.ToLower(text)
	sentences := SplitSentences(text)
	for _, r := range rules {
		if r.match(lower, sentences) {
			return pkg.SafetyResult{Level: r.level, Message: r.message}
		}
	}
	return pkg.SafetyResult{Level: pkg.LevelSafe, Message: safeMessage}
}

// matchCardiac fires when a single sentence mentions chest pain without a
// negation cue and also carries at least one accompanying feature
// (radiating pain, shortness of breath, or sweating).
func matchCardiac(_ string, sentences []string) bool {
	for _, s := range sentences {
		if !containsAny(s, chestPainCues) || hasNegation(s) {
			continue
		}
		if containsAny(s, radiatingCues) || containsAny(s, shortnessOfBreathCues) || containsAny(s, sweatingCues) {
			return true
		}
	}
	return false
}

// matchGIBleeding fires on a GI-bleeding cue in any sentence that does
// not contain a negation cue.
func matchGIBleeding(_ string, sentences []string) bool {
	for _, s := range sentences {
		if containsAny(s, giBleedingCues) && !hasNegation(s) {
			return true
		}
	}
	return false
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}
