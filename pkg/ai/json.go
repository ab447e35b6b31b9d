package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSON = errors.New("no json object in response")

// stripCodeFences removes a surrounding ```json ... ``` fence.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the JSON object in a model response. Models
// sometimes wrap the object in fences or prose, so when the whole response is
// not an object the span from the first '{' to the last '}' is tried.
func extractJSONObject(s string) ([]byte, error) {
	s = stripCodeFences(s)
	if s == "" {
		return nil, errors.New("empty response")
	}
	if isObject(s) {
		return []byte(s), nil
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		if sub := s[start : end+1]; isObject(sub) {
			return []byte(sub), nil
		}
	}
	return nil, errNoJSON
}

func isObject(s string) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &m) == nil && m != nil
}
