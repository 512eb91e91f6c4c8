package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidOutput is returned when a model reply is not the JSON asked for.
var ErrInvalidOutput = errors.New("invalid AI output")

// StripFences removes a leading ```json or ``` fence and a trailing ```
// fence from a model reply.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced {...} block in s.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// schemaValidator checks decoded replies against a compiled JSON schema.
type schemaValidator struct {
	schema *gojsonschema.Schema
}

func mustSchema(src string) schemaValidator {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schemaValidator{schema: s}
}

func (v schemaValidator) validate(doc []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidOutput, strings.Join(msgs, "; "))
}

// decodeReply strips fencing, finds the JSON object, validates it and
// decodes it into T.
func decodeReply[T any](raw string, v schemaValidator) (T, error) {
	var zero T

	doc := extractJSONObject(StripFences(raw))
	if doc == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	if err := v.validate([]byte(doc)); err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return out, nil
}
