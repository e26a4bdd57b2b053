package ai

import "strings"

// extractJSONObject pulls the outermost JSON object out of model output,
// tolerating prose or code fences around it. It spans from the first "{"
// to the last "}".
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
