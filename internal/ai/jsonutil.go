package ai

import "regexp"

// LLMs frequently wrap JSON in markdown fences or append trailing commas;
// these patterns recover the payload before decoding.
var (
	fencedObjectPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	fencedArrayPattern  = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\[.*\\])\\s*```")
	bareObjectPattern   = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	bareArrayPattern    = regexp.MustCompile(`(?s)\[[\s\S]*\]`)
	trailingComma       = regexp.MustCompile(`,\s*([}\]])`)
)

// extractJSONObject pulls a JSON object out of an LLM reply, tolerating
// markdown code fences and trailing commas. Returns "" when no object is
// present.
func extractJSONObject(content string) string {
	if m := fencedObjectPattern.FindStringSubmatch(content); len(m) > 1 {
		return trailingComma.ReplaceAllString(m[1], "$1")
	}

	if m := bareObjectPattern.FindString(content); m != "" {
		return trailingComma.ReplaceAllString(m, "$1")
	}

	return ""
}

// extractJSONArray pulls a JSON array out of an LLM reply, tolerating
// markdown code fences and trailing commas. Returns "" when no array is
// present.
func extractJSONArray(content string) string {
	if m := fencedArrayPattern.FindStringSubmatch(content); len(m) > 1 {
		return trailingComma.ReplaceAllString(m[1], "$1")
	}

	if m := bareArrayPattern.FindString(content); m != "" {
		return trailingComma.ReplaceAllString(m, "$1")
	}

	return ""
}
