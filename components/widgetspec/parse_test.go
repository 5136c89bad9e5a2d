package widgetspec

import (
	"strings"
	"testing"
)

func TestParseSpecDecodesValidDocument(t *testing.T) {
	spec, result := ParseSpec(validRawSpec)
	if !result.Valid {
		t.Fatalf("expected valid parse, got %+v", result.Errors)
	}
	if spec == nil {
		t.Fatal("expected decoded spec")
	}
	if spec.Meta.Name != "Office Clocks" {
		t.Fatalf("unexpected meta name %q", spec.Meta.Name)
	}
	if spec.Layout.Columns == nil || spec.Layout.Columns.Count != 3 {
		t.Fatalf("expected 3 grid columns, got %+v", spec.Layout.Columns)
	}
	if len(spec.Display) != 2 {
		t.Fatalf("expected 2 display nodes, got %d", len(spec.Display))
	}
}

func TestParseSpecReportsMalformedJSON(t *testing.T) {
	spec, result := ParseSpec(`{"version": "1.0",`)
	if spec != nil {
		t.Fatal("expected nil spec for malformed JSON")
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %d", len(result.Errors))
	}
	if !strings.HasPrefix(result.Errors[0].Message, "JSON parse error: ") {
		t.Fatalf("unexpected message: %s", result.Errors[0].Message)
	}
	if result.Errors[0].Code != CodeInvalidType {
		t.Fatalf("unexpected code: %s", result.Errors[0].Code)
	}
}

func TestParseSpecNilOnSchemaFailure(t *testing.T) {
	spec, result := ParseSpec(`{"version": "2.0"}`)
	if spec != nil {
		t.Fatal("expected nil spec when validation fails")
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
}

func TestExportSpecRoundTrips(t *testing.T) {
	spec, result := ParseSpec(validRawSpec)
	if !result.Valid {
		t.Fatalf("fixture must parse: %+v", result.Errors)
	}
	raw, err := ExportSpec(spec)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	reparsed, reresult := ParseSpec(raw)
	if !reresult.Valid {
		t.Fatalf("exported document must re-validate, got %+v", reresult.Errors)
	}
	if reparsed.Meta.Name != spec.Meta.Name {
		t.Fatalf("round trip lost meta name: %q", reparsed.Meta.Name)
	}
	if reparsed.Layout.Columns.Count != spec.Layout.Columns.Count {
		t.Fatalf("round trip lost grid columns: %+v", reparsed.Layout.Columns)
	}
}

func TestExportSpecRejectsNil(t *testing.T) {
	if _, err := ExportSpec(nil); err == nil {
		t.Fatal("expected error for nil spec")
	}
}
