package widgetspec

import (
	"regexp"
	"sort"
	"strconv"
)

// dangerousPatterns is the fixed denylist applied to every string value in a
// spec document. The scan is unconditional and cannot be disabled.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`), // onclick=, onerror=, etc.
	regexp.MustCompile(`(?i)data:\s*text/html`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)<object`),
}

const securityViolationMessage = "String contains potentially dangerous content (script, javascript:, event handlers)"

// ContainsDangerousContent reports whether value matches the denylist.
func ContainsDangerousContent(value string) bool {
	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// scanForDangerousContent walks a decoded JSON document and records a
// SECURITY_VIOLATION at the exact path of every offending string.
func scanForDangerousContent(doc any, path string, errs *[]ValidationError) {
	switch v := doc.(type) {
	case string:
		if ContainsDangerousContent(v) {
			*errs = append(*errs, ValidationError{
				Path:    path,
				Message: securityViolationMessage,
				Code:    CodeSecurityViolation,
			})
		}
	case []any:
		for i, item := range v {
			scanForDangerousContent(item, indexPath(path, i), errs)
		}
	case map[string]any:
		for _, key := range sortedKeys(v) {
			scanForDangerousContent(v[key], joinPath(path, key), errs)
		}
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// sortedKeys keeps map traversal deterministic so validation of the same
// document always yields errors in the same order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
