package llm

import "strings"

// ExtractJSON strips Markdown code fences and surrounding prose from a model
// response, returning the JSON payload. Models often wrap structured output
// in ```json fences even when told not to.
func ExtractJSON(response string) string {
	trimmed := strings.TrimSpace(response)

	if start := strings.Index(trimmed, "```"); start >= 0 {
		rest := trimmed[start+3:]

		// Drop the language tag on the opening fence.
		if newline := strings.IndexByte(rest, '\n'); newline >= 0 {
			rest = rest[newline+1:]
		}

		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}

		return strings.TrimSpace(rest)
	}

	// No fences: cut to the outermost JSON object or array.
	objStart := strings.IndexByte(trimmed, '{')
	arrStart := strings.IndexByte(trimmed, '[')

	start := objStart
	closer := byte('}')

	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
		closer = ']'
	}

	if start < 0 {
		return trimmed
	}

	if end := strings.LastIndexByte(trimmed, closer); end > start {
		return strings.TrimSpace(trimmed[start : end+1])
	}

	return strings.TrimSpace(trimmed[start:])
}
