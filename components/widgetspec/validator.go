package widgetspec

import (
	"fmt"
	"strings"
)

// Validate checks a decoded JSON document against the widget spec schema.
// It is a pure function: errors are aggregated, never thrown, and the same
// input always yields the same result. Valid is true iff no error was found;
// warnings never affect Valid.
func Validate(candidate any) ValidationResult {
	obj, ok := candidate.(map[string]any)
	if candidate == nil || !ok {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Path:    "",
				Message: "Widget spec must be an object",
				Code:    CodeInvalidType,
			}},
		}
	}

	var errs []ValidationError
	var warnings []string

	// Security scan runs unconditionally over the whole document.
	scanForDangerousContent(candidate, "", &errs)

	if version, _ := obj["version"].(string); version != SpecVersion {
		errs = append(errs, ValidationError{
			Path:    "version",
			Message: `Widget spec version must be "1.0"`,
			Code:    CodeInvalidValue,
		})
	}

	validateMeta(obj, &errs)
	validateData(obj, &errs)
	validateLayout(obj, &errs)
	validateDisplay(obj, &errs, &warnings)

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func validateMeta(obj map[string]any, errs *[]ValidationError) {
	meta, ok := obj["meta"].(map[string]any)
	if !ok {
		*errs = append(*errs, ValidationError{
			Path:    "meta",
			Message: `Widget spec must have a "meta" object`,
			Code:    CodeMissingRequired,
		})
		return
	}
	if name, _ := meta["name"].(string); name == "" {
		*errs = append(*errs, ValidationError{
			Path:    "meta.name",
			Message: `Widget meta must have a "name" string`,
			Code:    CodeMissingRequired,
		})
	}
}

func validateData(obj map[string]any, errs *[]ValidationError) {
	data, ok := obj["data"].(map[string]any)
	if !ok {
		*errs = append(*errs, ValidationError{
			Path:    "data",
			Message: `Widget spec must have a "data" object`,
			Code:    CodeMissingRequired,
		})
		return
	}

	source, _ := data["source"].(string)
	if !isValidDataSource(source) {
		*errs = append(*errs, ValidationError{
			Path:    "data.source",
			Message: fmt.Sprintf("Invalid data source %q. Available sources: %s", stringify(data["source"]), joinSources()),
			Code:    CodeInvalidValue,
		})
	}

	fields, ok := data["fields"].([]any)
	if !ok {
		*errs = append(*errs, ValidationError{
			Path:    "data.fields",
			Message: "data.fields must be an array",
			Code:    CodeInvalidType,
		})
		return
	}
	for i, raw := range fields {
		field, _ := raw.(string)
		if !IsValidDataField(field) {
			*errs = append(*errs, ValidationError{
				Path:    indexPath("data.fields", i),
				Message: fmt.Sprintf("Invalid data field %q. Available fields: %s", stringify(raw), strings.Join(fieldNames(), ", ")),
				Code:    CodeInvalidValue,
			})
		}
	}
}

func validateLayout(obj map[string]any, errs *[]ValidationError) {
	layout, ok := obj["layout"].(map[string]any)
	if !ok {
		*errs = append(*errs, ValidationError{
			Path:    "layout",
			Message: `Widget spec must have a "layout" object`,
			Code:    CodeMissingRequired,
		})
		return
	}

	layoutType, _ := layout["type"].(string)
	if !isValidLayoutType(layoutType) {
		*errs = append(*errs, ValidationError{
			Path:    "layout.type",
			Message: fmt.Sprintf("Invalid layout type %q. Available types: %s", stringify(layout["type"]), joinLayoutTypes()),
			Code:    CodeInvalidValue,
		})
	}

	if gap, present := layout["gap"]; present && gap != nil && gap != "" {
		gapStr, _ := gap.(string)
		if !isValidGapSize(gapStr) {
			*errs = append(*errs, ValidationError{
				Path:    "layout.gap",
				Message: fmt.Sprintf("Invalid gap size %q. Available sizes: %s", stringify(gap), joinGapSizes()),
				Code:    CodeInvalidValue,
			})
		}
	}
}

func validateDisplay(obj map[string]any, errs *[]ValidationError, warnings *[]string) {
	display, ok := obj["display"].([]any)
	if !ok {
		*errs = append(*errs, ValidationError{
			Path:    "display",
			Message: `Widget spec must have a "display" array`,
			Code:    CodeMissingRequired,
		})
		return
	}
	if len(display) == 0 {
		*warnings = append(*warnings, "Display array is empty - widget will show nothing")
	}
	for i, node := range display {
		validateDisplayNode(node, indexPath("display", i), errs)
	}
}

func validateDisplayNode(node any, path string, errs *[]ValidationError) {
	config, ok := node.(map[string]any)
	if !ok {
		*errs = append(*errs, ValidationError{
			Path:    path,
			Message: "Display component must be an object",
			Code:    CodeInvalidType,
		})
		return
	}

	component, _ := config["component"].(string)
	if component == "" {
		*errs = append(*errs, ValidationError{
			Path:    joinPath(path, "component"),
			Message: `Display component must have a "component" property`,
			Code:    CodeMissingRequired,
		})
	} else if !IsValidComponentType(component) {
		*errs = append(*errs, ValidationError{
			Path:    joinPath(path, "component"),
			Message: fmt.Sprintf("Invalid component type %q. Available types: %s", component, strings.Join(componentTypeNames(), ", ")),
			Code:    CodeInvalidValue,
		})
	}

	if bindings, ok := config["bindings"].(map[string]any); ok {
		validateBindings(bindings, path, errs)
	}

	if children, ok := config["children"].([]any); ok {
		for i, child := range children {
			validateDisplayNode(child, indexPath(joinPath(path, "children"), i), errs)
		}
	}
}

// validateBindings flags plausible field-name typos. A right-hand side that
// is not a recognized field is accepted as a literal when it looks like a
// color or contains whitespace; otherwise a case-insensitive near match
// produces a did-you-mean error. Many literal-looking bindings pass
// uninspected; that leniency is intentional.
func validateBindings(bindings map[string]any, path string, errs *[]ValidationError) {
	for _, propName := range sortedKeys(bindings) {
		fieldName, ok := bindings[propName].(string)
		if !ok {
			continue
		}
		switch {
		case IsValidDataField(fieldName):
			// Recognized data field.
		case strings.HasPrefix(fieldName, "#") || strings.Contains(fieldName, " "):
			// Looks like a color or static string.
		default:
			if similar, found := closestField(fieldName); found {
				*errs = append(*errs, ValidationError{
					Path:    joinPath(path, "bindings."+propName),
					Message: fmt.Sprintf("Did you mean %q instead of %q?", similar, fieldName),
					Code:    CodeInvalidValue,
				})
			}
		}
	}
}

func isValidDataSource(s string) bool {
	for _, src := range ValidDataSources {
		if DataSource(s) == src {
			return true
		}
	}
	return false
}

func isValidLayoutType(s string) bool {
	for _, lt := range ValidLayoutTypes {
		if LayoutType(s) == lt {
			return true
		}
	}
	return false
}

func isValidGapSize(s string) bool {
	for _, g := range ValidGapSizes {
		if GapSize(s) == g {
			return true
		}
	}
	return false
}

func joinSources() string {
	parts := make([]string, len(ValidDataSources))
	for i, s := range ValidDataSources {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinLayoutTypes() string {
	parts := make([]string, len(ValidLayoutTypes))
	for i, t := range ValidLayoutTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func joinGapSizes() string {
	parts := make([]string, len(ValidGapSizes))
	for i, g := range ValidGapSizes {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
