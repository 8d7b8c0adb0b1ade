// Package core implements the question pipeline: safety classification,
// prompt construction, a single LLM invocation, and structured-output
// parsing.  All steps except the LLM call are pure computations.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medassist/internal/llm"
	"medassist/internal/safety"
	"medassist/pkg"
)

// ErrEmptyQuestion signals a client input error: the question was empty
// or whitespace-only.  It is rejected before any classification runs.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// emergencyAnswer is returned verbatim whenever the safety layer
// classifies the question as an emergency.  The LLM is never contacted
// in that case.
const emergencyAnswer = "Your description contains signs that may indicate a medical emergency.\n\n" +
	"⚠ Please call your local emergency number or go to the nearest emergency " +
	"department immediately.\n\n" +
	"For safety reasons, this system will not provide further online analysis " +
	"or advice for potential emergency situations."

// Sampling parameter bounds.  Caller-supplied values outside these
// ranges are clamped silently rather than rejected.
const (
	defaultTemperature float32 = 0.2
	minTemperature     float32 = 0.0
	maxTemperature     float32 = 1.5

	defaultMaxTokens = 512
	minMaxTokens     = 64
	maxMaxTokens     = 1024
)

// AskService runs the full pipeline for one question.  The LLM client is
// injected so tests can substitute a fake; the service itself holds no
// per-request state and is safe for concurrent use.
type AskService struct {
	LLM llm.Client
}

// NewAskService constructs an AskService with the given LLM client.
func NewAskService(client llm.Client) *AskService {
	return &AskService{LLM: client}
}

// Ask processes a single question end to end:
//
//  1. Reject empty input.
//  2. Run the safety classifier on the raw question.
//  3. On an emergency classification, return a canned warning without
//     contacting the LLM.
//  4. Otherwise build the task- and language-specific prompt, clamp the
//     sampling parameters, and invoke the LLM once.  No retries: any
//     failure is wrapped and surfaced to the caller.
//  5. Split the reply into answer text and the optional severity block.
//
// The returned response includes the prompt that was sent, for audit and
// debugging.
func (s *AskService) Ask(ctx context.Context, req pkg.AskRequest) (*pkg.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	result := safety.Check(question)
	if result.Level == pkg.LevelEmergency {
		return &pkg.AskResponse{
			Answer: emergencyAnswer,
			Safety: result,
		}, nil
	}

	taskType := req.TaskType
	if taskType == "" {
		taskType = pkg.TaskMedicalQA
	}
	language := req.Language
	if language == "" {
		language = pkg.LangChinese
	}

	prompt := BuildPrompt(taskType, question, language)

	raw, err := s.LLM.Invoke(ctx, prompt, clampMaxTokens(req.MaxTokens), clampTemperature(req.Temperature))
	if err != nil {
		return nil, fmt.Errorf("calling LLM: %w", err)
	}

	answer, severity := ParseSeverity(raw)
	return &pkg.AskResponse{
		Answer:     answer,
		Safety:     result,
		Severity:   severity,
		UsedPrompt: prompt,
	}, nil
}

// clampTemperature applies the default when unset and constrains the
// value to [minTemperature, maxTemperature].
func clampTemperature(v *float32) float32 {
	if v == nil {
		return defaultTemperature
	}
	t := *v
	if t < minTemperature {
		return minTemperature
	}
	if t > maxTemperature {
		return maxTemperature
	}
	return t
}

// clampMaxTokens applies the default when unset and constrains the value
// to [minMaxTokens, maxMaxTokens].
func clampMaxTokens(v *int) int {
	if v == nil {
		return defaultMaxTokens
	}
	n := *v
	if n < minMaxTokens {
		return minMaxTokens
	}
	if n > maxMaxTokens {
		return maxMaxTokens
	}
	return n
}
