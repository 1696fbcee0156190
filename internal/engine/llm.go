package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// TextCompleter is the generative-text collaborator. Satisfied by
// *llm.Client; injected via Config so tests can substitute a fake.
type TextCompleter interface {
	Complete(ctx context.Context, system, prompt string, opts ...llm.ChatOption) (string, error)
}

// ErrNoLLMClient is returned when no completer was configured.
var ErrNoLLMClient = errors.New("llm client not configured")

// CallLLM sends a prompt with a per-call output token cap and returns the raw
// response text.
func CallLLM(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrNoLLMClient
	}
	IncrLLMCall()
	raw, err := cfg.LLMClient.Complete(ctx, system, prompt,
		llm.WithChatMaxTokens(maxTokens),
	)
	if err != nil {
		IncrLLMError()
		return "", err
	}
	return raw, nil
}

// StripFences removes markdown code fences from LLM output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the widest {...} span of s: first opening brace
// through last closing brace. Used when a response wraps JSON in prose.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// DecodeInsight parses an LLM response into out: strip fences, try a direct
// parse, then retry on the embedded {...} span. Returns an error only when
// no usable JSON exists — callers substitute their role's fallback.
func DecodeInsight(raw string, out any) error {
	text := StripFences(raw)
	if err := json.Unmarshal([]byte(text), out); err == nil {
		return nil
	}
	span, ok := ExtractJSONObject(text)
	if !ok {
		return fmt.Errorf("decode insight: no JSON object in response")
	}
	if err := json.Unmarshal([]byte(span), out); err != nil {
		return fmt.Errorf("decode insight: %w", err)
	}
	return nil
}
