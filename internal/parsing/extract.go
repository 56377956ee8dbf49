// Package parsing turns raw LLM responses into structured values, with
// documented defaults for the extractions that must never fail the pipeline.
package parsing

import "strings"

// ExtractJSONBlock returns the JSON payload from an LLM response. The model
// may wrap the payload in a fenced code block labeled "json" or unlabeled,
// with prose before or after; the innermost fenced content wins. Responses
// without fences are returned trimmed as-is.
func ExtractJSONBlock(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+len("```"):]
		// Skip a language identifier on the fence line.
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			firstLine := strings.TrimSpace(rest[:nl])
			if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
				rest = rest[nl+1:]
			}
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	return strings.TrimSpace(text)
}

// CleanLine strips quoting and code-fencing artifacts from a single-line
// reply, like an extracted job title.
func CleanLine(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "`")
	text = strings.Trim(text, `"'`)
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
