package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse signals that generator output could not be parsed into
// the expected structure. Callers treat it exactly like
// ErrGenerationUnavailable: both trigger the stage's fallback value.
var ErrMalformedResponse = errors.New("malformed generation response")

// ParseJSON extracts a JSON object from generator output that may be wrapped
// in a markdown code fence, and verifies that every required key is present.
func ParseJSON(raw string, required ...string) (map[string]any, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, key := range required {
		if _, ok := result[key]; !ok {
			return nil, fmt.Errorf("%w: missing required field %q", ErrMalformedResponse, key)
		}
	}

	return result, nil
}

// GenerateJSON is the uniform two-step contract used at every model-backed
// call site: generate, then parse with required-field validation. Either
// failure is returned for the caller to convert into its stage default.
func GenerateJSON(ctx context.Context, gen TextGenerator, prompt string, maxTokens int, temperature float32, required ...string) (map[string]any, error) {
	raw, err := gen.Generate(ctx, prompt, maxTokens, temperature)
	if err != nil {
		return nil, err
	}
	return ParseJSON(raw, required...)
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	endIdx := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[1:endIdx], "\n"))
}

// StringSlice coerces a decoded JSON array into []string, skipping non-string
// elements.
func StringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Number coerces a decoded JSON value into float64, accepting the
// string-wrapped numbers some models emit.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
