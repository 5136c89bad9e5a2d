package widgetspec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	packVersionV1 = "1"
	// PackVersion exposes the current preset pack format version for tooling.
	PackVersion = packVersionV1
)

// PresetPackDocument models a YAML/JSON pack of widget specs that can be
// distributed alongside the built-in presets.
type PresetPackDocument struct {
	Version  string       `json:"version" yaml:"version"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Package  string       `json:"package,omitempty" yaml:"package,omitempty"`
	Homepage string       `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Widgets  []PackWidget `json:"widgets" yaml:"widgets"`
	Source   string       `json:"-" yaml:"-"`
}

// PackWidget describes one widget spec entry within a pack.
type PackWidget struct {
	ID          string     `json:"id" yaml:"id"`
	Spec        WidgetSpec `json:"spec" yaml:"spec"`
	Maintainers []string   `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ReadPresetPack loads a pack file from disk.
func ReadPresetPack(path string) (*PresetPackDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("widgetspec: open preset pack %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodePresetPack(f)
	if err != nil {
		return nil, fmt.Errorf("widgetspec: decode preset pack %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodePresetPack reads a pack from any reader. Unknown YAML fields are
// rejected so typos surface instead of being silently dropped.
func DecodePresetPack(r io.Reader) (*PresetPackDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PresetPackDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("widgetspec: preset pack is empty")
		}
		return nil, fmt.Errorf("widgetspec: parse preset pack: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the pack satisfies required fields and that every spec in
// it passes document validation.
func (doc *PresetPackDocument) Validate() error {
	if doc.Version != packVersionV1 {
		return fmt.Errorf("widgetspec: unsupported preset pack version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.ID == "" {
			return fmt.Errorf("widgetspec: preset pack widget at index %d is missing id", idx)
		}
		if _, exists := seen[widget.ID]; exists {
			return fmt.Errorf("widgetspec: preset pack duplicates widget id %s", widget.ID)
		}
		seen[widget.ID] = struct{}{}
		if result := validatePackSpec(widget.Spec); !result.Valid {
			first := result.Errors[0]
			return fmt.Errorf("widgetspec: preset pack widget %s is invalid: %s at %q", widget.ID, first.Message, first.Path)
		}
	}
	return nil
}

// validatePackSpec routes a typed spec through document validation.
func validatePackSpec(spec WidgetSpec) ValidationResult {
	data, err := json.Marshal(spec)
	if err != nil {
		return ValidationResult{Errors: []ValidationError{{
			Path:    "",
			Message: fmt.Sprintf("JSON parse error: %v", err),
			Code:    CodeInvalidType,
		}}}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return ValidationResult{Errors: []ValidationError{{
			Path:    "",
			Message: fmt.Sprintf("JSON parse error: %v", err),
			Code:    CodeInvalidType,
		}}}
	}
	return Validate(doc)
}

func (doc *PresetPackDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = packVersionV1
	}
}

// ImportPresetPack stores every widget of a pack, tagging entries with the
// pack's metadata. Validation failures abort before anything is stored.
func ImportPresetPack(ctx context.Context, store WidgetStore, doc *PresetPackDocument) ([]StoredWidget, error) {
	if doc == nil {
		return nil, fmt.Errorf("widgetspec: preset pack document is nil")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	stored := make([]StoredWidget, 0, len(doc.Widgets))
	for _, widget := range doc.Widgets {
		spec := widget.Spec
		created, err := store.Create(ctx, CreateWidgetInput{
			Spec: &spec,
			Tags: widget.Tags,
		})
		if err != nil {
			return stored, fmt.Errorf("widgetspec: import widget %s from %s: %w", widget.ID, doc.Source, err)
		}
		stored = append(stored, created)
	}
	return stored, nil
}
