package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medassist/pkg"
)

// fakeLLM records every invocation and returns a canned reply or error.
type fakeLLM struct {
	reply string
	err   error

	calls        int
	gotPrompt    string
	gotMaxTokens int
	gotTemp      float32
}

func (f *fakeLLM) Invoke(_ context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	f.gotMaxTokens = maxTokens
	f.gotTemp = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestAsk_EmptyQuestion(t *testing.T) {
	fake := &fakeLLM{}
	svc := NewAskService(fake)

	for _, q := range []string{"", "   ", "\n\t"} {
		resp, err := svc.Ask(context.Background(), pkg.AskRequest{Question: q})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
	assert.Equal(t, 0, fake.calls)
}

func TestAsk_EmergencyShortCircuit(t *testing.T) {
	fake := &fakeLLM{reply: "should never be used"}
	svc := NewAskService(fake)

	resp, err := svc.Ask(context.Background(), pkg.AskRequest{
		Question: "I have chest pain radiating to my left arm",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, pkg.LevelEmergency, resp.Safety.Level)
	assert.Equal(t, emergencyAnswer, resp.Answer)
	assert.Nil(t, resp.Severity)
	assert.Empty(t, resp.UsedPrompt)
	assert.Equal(t, 0, fake.calls, "LLM must never be invoked for emergencies")
}

func TestAsk_SafeQuestionInvokesLLMOnce(t *testing.T) {
	fake := &fakeLLM{
		reply: "Headaches are usually benign.\n" + JSONMarker + `{"severity": "low", "recommended_action": "self_care"}`,
	}
	svc := NewAskService(fake)

	resp, err := svc.Ask(context.Background(), pkg.AskRequest{
		Question: "What are common causes of a mild headache?",
		TaskType: pkg.TaskEducation,
		Language: pkg.LangEnglish,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, pkg.LevelSafe, resp.Safety.Level)
	assert.Equal(t, 1, fake.calls)
	assert.Contains(t, fake.gotPrompt, taskInstructions[pkg.TaskEducation])
	assert.Contains(t, fake.gotPrompt, langInstructionEN)
	assert.Equal(t, fake.gotPrompt, resp.UsedPrompt)

	assert.Equal(t, "Headaches are usually benign.", resp.Answer)
	require.NotNil(t, resp.Severity)
	require.NotNil(t, resp.Severity.Severity)
	assert.Equal(t, "low", *resp.Severity.Severity)
}

func TestAsk_WarningStillInvokesLLM(t *testing.T) {
	fake := &fakeLLM{reply: "Please get that checked."}
	svc := NewAskService(fake)

	resp, err := svc.Ask(context.Background(), pkg.AskRequest{
		Question: "I get short of breath when climbing stairs",
		Language: pkg.LangEnglish,
	})
	require.NoError(t, err)
	assert.Equal(t, pkg.LevelWarning, resp.Safety.Level)
	assert.Equal(t, 1, fake.calls)
	assert.Nil(t, resp.Severity)
}

func TestAsk_Defaults(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	svc := NewAskService(fake)

	_, err := svc.Ask(context.Background(), pkg.AskRequest{Question: "how much water per day?"})
	require.NoError(t, err)

	// task_type defaults to medical_qa, language to zh.
	assert.Contains(t, fake.gotPrompt, taskInstructions[pkg.TaskMedicalQA])
	assert.Contains(t, fake.gotPrompt, langInstructionZH)
	// sampling defaults
	assert.Equal(t, defaultMaxTokens, fake.gotMaxTokens)
	assert.Equal(t, defaultTemperature, fake.gotTemp)
}

func TestAsk_ClampsSamplingParameters(t *testing.T) {
	float32Ptr := func(v float32) *float32 { return &v }
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name          string
		temperature   *float32
		maxTokens     *int
		wantTemp      float32
		wantMaxTokens int
	}{
		{"both-high", float32Ptr(9.9), intPtr(5000), maxTemperature, maxMaxTokens},
		{"both-low", float32Ptr(-1), intPtr(1), minTemperature, minMaxTokens},
		{"in-range", float32Ptr(0.7), intPtr(256), 0.7, 256},
		{"boundaries", float32Ptr(1.5), intPtr(64), 1.5, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLLM{reply: "ok"}
			svc := NewAskService(fake)

			_, err := svc.Ask(context.Background(), pkg.AskRequest{
				Question:    "is a daily walk healthy?",
				Temperature: tt.temperature,
				MaxTokens:   tt.maxTokens,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTemp, fake.gotTemp)
			assert.Equal(t, tt.wantMaxTokens, fake.gotMaxTokens)
		})
	}
}

func TestAsk_LLMFailureSurfaced(t *testing.T) {
	boom := errors.New("rate limited")
	fake := &fakeLLM{err: boom}
	svc := NewAskService(fake)

	resp, err := svc.Ask(context.Background(), pkg.AskRequest{Question: "is tea healthy?"})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrEmptyQuestion)
	assert.Equal(t, 1, fake.calls, "exactly one attempt, no retries")
}
