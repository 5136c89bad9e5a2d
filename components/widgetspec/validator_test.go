package widgetspec

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const validRawSpec = `{
	"version": "1.0",
	"meta": {"name": "Office Clocks", "category": "clocks"},
	"data": {"source": "timezones", "fields": ["time", "label", "color"]},
	"layout": {"type": "grid", "columns": 3, "gap": "md"},
	"display": [
		{"component": "digital-clock", "bindings": {"time": "time"}},
		{"component": "text", "bindings": {"content": "label"}}
	]
}`

func decodeDoc(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return doc
}

func findError(result ValidationResult, path string) (ValidationError, bool) {
	for _, e := range result.Errors {
		if e.Path == path {
			return e, true
		}
	}
	return ValidationError{}, false
}

func TestValidateAcceptsWellFormedSpec(t *testing.T) {
	result := Validate(decodeDoc(t, validRawSpec))
	if !result.Valid {
		t.Fatalf("expected valid spec, got errors: %+v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestValidateRejectsNonObject(t *testing.T) {
	for _, doc := range []any{nil, "spec", []any{}, 42.0} {
		result := Validate(doc)
		if result.Valid {
			t.Fatalf("expected %v to be rejected", doc)
		}
		if result.Errors[0].Message != "Widget spec must be an object" {
			t.Fatalf("unexpected message: %s", result.Errors[0].Message)
		}
		if result.Errors[0].Code != CodeInvalidType {
			t.Fatalf("expected INVALID_TYPE, got %s", result.Errors[0].Code)
		}
	}
}

func TestValidateRejectsWrongVersion(t *testing.T) {
	doc := decodeDoc(t, validRawSpec)
	doc.(map[string]any)["version"] = "2.0"
	result := Validate(doc)
	if result.Valid {
		t.Fatal("expected version error")
	}
	err, ok := findError(result, "version")
	if !ok {
		t.Fatalf("expected error at \"version\", got %+v", result.Errors)
	}
	if err.Message != `Widget spec version must be "1.0"` {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.Code != CodeInvalidValue {
		t.Fatalf("expected INVALID_VALUE, got %s", err.Code)
	}
}

func TestValidateRequiredSections(t *testing.T) {
	cases := []struct {
		remove  string
		path    string
		message string
	}{
		{"meta", "meta", `Widget spec must have a "meta" object`},
		{"data", "data", `Widget spec must have a "data" object`},
		{"layout", "layout", `Widget spec must have a "layout" object`},
		{"display", "display", `Widget spec must have a "display" array`},
	}
	for _, tc := range cases {
		doc := decodeDoc(t, validRawSpec).(map[string]any)
		delete(doc, tc.remove)
		result := Validate(doc)
		if result.Valid {
			t.Fatalf("expected error when %s is missing", tc.remove)
		}
		err, ok := findError(result, tc.path)
		if !ok {
			t.Fatalf("expected error at %q, got %+v", tc.path, result.Errors)
		}
		if err.Message != tc.message {
			t.Fatalf("unexpected message for %s: %s", tc.remove, err.Message)
		}
		if err.Code != CodeMissingRequired {
			t.Fatalf("expected MISSING_REQUIRED for %s, got %s", tc.remove, err.Code)
		}
	}
}

func TestValidateMissingMetaName(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["meta"] = map[string]any{"category": "clocks"}
	result := Validate(doc)
	err, ok := findError(result, "meta.name")
	if !ok {
		t.Fatalf("expected error at meta.name, got %+v", result.Errors)
	}
	if err.Message != `Widget meta must have a "name" string` {
		t.Fatalf("unexpected message: %s", err.Message)
	}
}

func TestValidateEnumValues(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["data"] = map[string]any{"source": "weather", "fields": []any{"time", "temprature"}}
	doc["layout"] = map[string]any{"type": "masonry", "gap": "huge"}
	result := Validate(doc)
	if result.Valid {
		t.Fatal("expected enum errors")
	}

	if err, ok := findError(result, "data.source"); !ok {
		t.Fatalf("expected error at data.source")
	} else if err.Message != `Invalid data source "weather". Available sources: timezones, holidays` {
		t.Fatalf("unexpected source message: %s", err.Message)
	}

	if err, ok := findError(result, "data.fields[1]"); !ok {
		t.Fatalf("expected error at data.fields[1]")
	} else if !strings.HasPrefix(err.Message, `Invalid data field "temprature". Available fields: time, date, timezone`) {
		t.Fatalf("unexpected field message: %s", err.Message)
	}

	if err, ok := findError(result, "layout.type"); !ok {
		t.Fatalf("expected error at layout.type")
	} else if err.Message != `Invalid layout type "masonry". Available types: grid, flex, stack, single` {
		t.Fatalf("unexpected layout message: %s", err.Message)
	}

	if err, ok := findError(result, "layout.gap"); !ok {
		t.Fatalf("expected error at layout.gap")
	} else if err.Message != `Invalid gap size "huge". Available sizes: none, xs, sm, md, lg, xl` {
		t.Fatalf("unexpected gap message: %s", err.Message)
	}
}

func TestValidateFieldsMustBeArray(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["data"] = map[string]any{"source": "timezones", "fields": "time"}
	result := Validate(doc)
	err, ok := findError(result, "data.fields")
	if !ok {
		t.Fatalf("expected error at data.fields, got %+v", result.Errors)
	}
	if err.Message != "data.fields must be an array" || err.Code != CodeInvalidType {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestValidateEmptyDisplayWarnsButStaysValid(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["display"] = []any{}
	result := Validate(doc)
	if !result.Valid {
		t.Fatalf("empty display must stay valid, got %+v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0] != "Display array is empty - widget will show nothing" {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
}

func TestValidateDisplayComponents(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["display"] = []any{
		"not an object",
		map[string]any{"bindings": map[string]any{"time": "time"}},
		map[string]any{"component": "blink-tag"},
	}
	result := Validate(doc)
	if result.Valid {
		t.Fatal("expected display errors")
	}

	if err, ok := findError(result, "display[0]"); !ok {
		t.Fatal("expected error at display[0]")
	} else if err.Message != "Display component must be an object" {
		t.Fatalf("unexpected message: %s", err.Message)
	}

	if err, ok := findError(result, "display[1].component"); !ok {
		t.Fatal("expected error at display[1].component")
	} else if err.Message != `Display component must have a "component" property` {
		t.Fatalf("unexpected message: %s", err.Message)
	}

	if err, ok := findError(result, "display[2].component"); !ok {
		t.Fatal("expected error at display[2].component")
	} else if !strings.HasPrefix(err.Message, `Invalid component type "blink-tag". Available types: digital-clock, analog-clock`) {
		t.Fatalf("unexpected message: %s", err.Message)
	}
}

func TestValidateRecursesIntoChildren(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["display"] = []any{
		map[string]any{
			"component": "container",
			"children": []any{
				map[string]any{"component": "marquee"},
			},
		},
	}
	result := Validate(doc)
	if _, ok := findError(result, "display[0].children[0].component"); !ok {
		t.Fatalf("expected error inside nested child, got %+v", result.Errors)
	}
}

func TestValidateBindingDidYouMean(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["display"] = []any{
		map[string]any{"component": "digital-clock", "bindings": map[string]any{"time": "Time"}},
	}
	result := Validate(doc)
	err, ok := findError(result, "display[0].bindings.time")
	if !ok {
		t.Fatalf("expected did-you-mean error, got %+v", result.Errors)
	}
	if err.Message != `Did you mean "time" instead of "Time"?` {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.Code != CodeInvalidValue {
		t.Fatalf("expected INVALID_VALUE, got %s", err.Code)
	}
}

func TestValidateBindingLiteralsPass(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["display"] = []any{
		map[string]any{"component": "color-dot", "bindings": map[string]any{"color": "#FF0000"}},
		map[string]any{"component": "text", "bindings": map[string]any{"content": "Hello world"}},
		map[string]any{"component": "text", "bindings": map[string]any{"content": "greeting"}},
	}
	result := Validate(doc)
	if !result.Valid {
		t.Fatalf("literal bindings must pass, got %+v", result.Errors)
	}
}

func TestValidateSecurityScanFlagsExactPaths(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["display"] = []any{
		map[string]any{"component": "text", "content": "<script>alert(1)</script>"},
	}
	doc["meta"] = map[string]any{"name": "javascript:void(0)"}
	result := Validate(doc)
	if result.Valid {
		t.Fatal("expected security violations")
	}

	for _, path := range []string{"display[0].content", "meta.name"} {
		err, ok := findError(result, path)
		if !ok {
			t.Fatalf("expected violation at %q, got %+v", path, result.Errors)
		}
		if err.Code != CodeSecurityViolation {
			t.Fatalf("expected SECURITY_VIOLATION at %q, got %s", path, err.Code)
		}
		if err.Message != "String contains potentially dangerous content (script, javascript:, event handlers)" {
			t.Fatalf("unexpected message: %s", err.Message)
		}
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	doc := decodeDoc(t, validRawSpec).(map[string]any)
	doc["meta"] = map[string]any{
		"name":        "onload=bad",
		"description": "<iframe src=x>",
		"author":      "<embed>",
	}
	first := Validate(doc)
	for i := 0; i < 10; i++ {
		if next := Validate(doc); !reflect.DeepEqual(first, next) {
			t.Fatalf("validation order drifted on run %d:\nfirst: %+v\nnext: %+v", i, first, next)
		}
	}
}

func TestContainsDangerousContent(t *testing.T) {
	dangerous := []string{
		"<script>alert(1)</script>",
		"<SCRIPT>",
		"javascript:void(0)",
		"onclick = doEvil()",
		"data: text/html,<b>",
		"<iframe src=x>",
		"<embed>",
		"<object data=x>",
	}
	for _, s := range dangerous {
		if !ContainsDangerousContent(s) {
			t.Fatalf("expected %q to be flagged", s)
		}
	}
	safe := []string{"Office Clocks", "UTC+5:30", "#3B82F6", "on time = good"}
	for _, s := range safe {
		if ContainsDangerousContent(s) {
			t.Fatalf("expected %q to pass", s)
		}
	}
}
