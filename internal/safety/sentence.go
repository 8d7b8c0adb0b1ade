package safety

import "strings"

// sentenceDelim reports whether r ends a sentence.  Both Latin
// punctuation and the full-width Chinese equivalents count, as do
// newlines.
func sentenceDelim(r rune) bool {
	switch r {
	case '.', '!', '?', '\n', '。', '！', '？':
		return true
	}
	return false
}

// SplitSentences breaks raw text into lower-cased sentence fragments for
// English and Chinese input.  Runs of delimiters collapse to a single
// boundary and whitespace-only fragments are dropped, so the result for
// empty input is an empty slice.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(strings.ToLower(text), sentenceDelim)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// negationCues are generic bilingual markers that a symptom is being
// denied rather than reported.  Matching is plain substring containment
// over already lower-cased text; "I have no pain" is treated the same as
// any other sentence containing "no ".
var negationCues = []string{
	"no ", "without ", "denies ", "haven't ", "hasn't ",
	"没有", "無", "无", "沒有",
}

// hasNegation reports whether the sentence contains any negation cue.
func hasNegation(sentence string) bool {
	for _, cue := range negationCues {
		if strings.Contains(sentence, cue) {
			return true
		}
	}
	return false
}
