package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
	"github.com/goliatone/go-timedash/pkg/timezone"
)

type cli struct {
	Lint    lintCmd    `cmd:"" help:"Validate a widget spec file and report errors and warnings."`
	Render  renderCmd  `cmd:"" help:"Render a widget spec against timezone slots and print the result."`
	Presets presetsCmd `cmd:"" help:"List built-in presets or export one as JSON."`
	Pack    packCmd    `cmd:"" help:"Validate a preset pack file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Widget spec utility for go-timedash documents."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type lintCmd struct {
	Path string `arg:"" type:"path" help:"Path to the widget spec JSON file."`
	JSON bool   `help:"Emit the validation result as JSON instead of colorized text."`
}

func (cmd *lintCmd) Run(_ context.Context) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("widgetctl: read spec: %w", err)
	}
	_, result := widgetspec.ParseSpec(string(data))

	if cmd.JSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	for _, issue := range result.Errors {
		printIssue(color.New(color.FgRed), "error", issue.Path, issue.Message, string(issue.Code))
	}
	for _, warning := range result.Warnings {
		printIssue(color.New(color.FgYellow), "warning", "", warning, "")
	}
	if !result.Valid {
		return fmt.Errorf("widgetctl: %s has %d error(s)", cmd.Path, len(result.Errors))
	}
	color.New(color.FgGreen).Fprintf(os.Stdout, "✓ %s is valid", cmd.Path)
	if len(result.Warnings) > 0 {
		fmt.Fprintf(os.Stdout, " (%d warning(s))", len(result.Warnings))
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

func printIssue(c *color.Color, kind, path, message, code string) {
	c.Fprintf(os.Stderr, "%s", kind)
	if path != "" {
		fmt.Fprintf(os.Stderr, " at %s", path)
	}
	fmt.Fprintf(os.Stderr, ": %s", message)
	if code != "" {
		fmt.Fprintf(os.Stderr, " [%s]", code)
	}
	fmt.Fprintln(os.Stderr)
}

type renderCmd struct {
	Path     string   `arg:"" type:"path" help:"Path to the widget spec JSON file."`
	Timezone []string `short:"t" help:"IANA timezone to render against (repeatable); defaults to the quick-pick catalog entries."`
	Format   string   `default:"24h" enum:"12h,24h" help:"Clock format."`
	Seconds  bool     `help:"Show seconds."`
}

func (cmd *renderCmd) Run(ctx context.Context) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("widgetctl: read spec: %w", err)
	}
	spec, result := widgetspec.ParseSpec(string(data))
	if !result.Valid {
		return fmt.Errorf("widgetctl: %s has %d error(s); run lint for details", cmd.Path, len(result.Errors))
	}

	slots := make([]widgetspec.Slot, 0, len(cmd.Timezone))
	for i, tz := range cmd.Timezone {
		slot, ok := timezone.SlotFromCatalog(tz)
		if !ok {
			slot = widgetspec.Slot{Timezone: tz, Label: tz}
		}
		slot.ID = fmt.Sprintf("cli-%d", i)
		slots = append(slots, slot)
	}
	if len(slots) == 0 {
		for i, entry := range timezone.Catalog()[:3] {
			slot, _ := timezone.SlotFromCatalog(entry.Timezone)
			slot.ID = fmt.Sprintf("cli-%d", i)
			slots = append(slots, slot)
		}
	}

	prefs := widgetspec.FormatPrefs{TimeFormat: widgetspec.TimeFormat24h, ShowSeconds: cmd.Seconds}
	if cmd.Format == string(widgetspec.TimeFormat12h) {
		prefs.TimeFormat = widgetspec.TimeFormat12h
	}

	renderer := widgetspec.NewSpecRenderer(widgetspec.RendererOptions{})
	rendered := renderer.Render(ctx, spec, slots, time.Now(), prefs)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rendered)
}

type presetsCmd struct {
	ID       string `arg:"" optional:"" help:"Preset ID to export; omit to list all presets."`
	Category string `help:"Filter the listing by category."`
}

func (cmd *presetsCmd) Run(_ context.Context) error {
	if cmd.ID != "" {
		spec, ok := widgetspec.Preset(cmd.ID)
		if !ok {
			return fmt.Errorf("widgetctl: unknown preset %q", cmd.ID)
		}
		raw, err := widgetspec.ExportSpec(&spec)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, raw)
		return nil
	}

	presets := widgetspec.PresetWidgets()
	if cmd.Category != "" {
		presets = widgetspec.PresetsByCategory(cmd.Category)
	}
	bold := color.New(color.Bold)
	for _, preset := range presets {
		bold.Fprintf(os.Stdout, "%-20s", preset.ID)
		fmt.Fprintf(os.Stdout, " %s [%s]\n", preset.Spec.Meta.Name, preset.Spec.Meta.Category)
	}
	return nil
}

type packCmd struct {
	Path string `arg:"" type:"path" help:"Path to the preset pack YAML file."`
}

func (cmd *packCmd) Run(_ context.Context) error {
	doc, err := widgetspec.ReadPresetPack(cmd.Path)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(os.Stdout, "✓ %s is valid (%d widget(s))\n", cmd.Path, len(doc.Widgets))
	return nil
}
