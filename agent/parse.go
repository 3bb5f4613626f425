package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Directive is a structured tool-invocation request embedded in backend
// output: a JSON object of the form
//
//	{"tool": "<name>", "args": {...}}
//
// optionally wrapped in a ```json fenced block or surrounded by prose.
type Directive struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// ParseDirective is the single parsing boundary for tool-invocation
// directives. It returns (directive, true, nil) when output contains a valid
// directive, (zero, false, nil) when output is plain text, and a non-nil
// error when output clearly attempts a directive but is malformed. Callers
// treat that error as a backend failure, not a crash.
func ParseDirective(output string) (Directive, bool, error) {
	candidate, ok := extractJSONCandidate(output)
	if !ok {
		return Directive{}, false, nil
	}

	// Only text that names a "tool" key is considered a directive attempt;
	// arbitrary JSON payloads pass through as plain content.
	if !strings.Contains(candidate, `"tool"`) {
		return Directive{}, false, nil
	}

	var d Directive
	if err := json.Unmarshal([]byte(candidate), &d); err != nil {
		return Directive{}, false, fmt.Errorf("malformed tool directive: %w", err)
	}
	if d.Tool == "" {
		return Directive{}, false, fmt.Errorf("malformed tool directive: empty tool name")
	}
	if d.Args == nil {
		d.Args = map[string]any{}
	}
	return d, true, nil
}

// extractJSONCandidate locates the JSON object most likely to be a directive:
// a fenced code block if present, otherwise the outermost braced region of
// the trimmed output.
func extractJSONCandidate(output string) (string, bool) {
	text := strings.TrimSpace(output)

	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			text = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
