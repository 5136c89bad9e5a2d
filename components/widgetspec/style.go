package widgetspec

import (
	"strconv"
	"strings"
)

var marginClasses = map[GapSize]string{
	GapNone: "m-0",
	GapXS:   "m-1",
	GapSM:   "m-2",
	GapMD:   "m-3",
	GapLG:   "m-4",
	GapXL:   "m-6",
}

// StyleClasses derives presentation directives from a node's style block.
// Purely presentational; the render logic never inspects the result.
func StyleClasses(style *DisplayStyle) string {
	if style == nil {
		return ""
	}
	var classes []string

	switch style.TextAlign {
	case "center":
		classes = append(classes, "text-center")
	case "right":
		classes = append(classes, "text-right")
	case "left":
		classes = append(classes, "text-left")
	}

	switch style.FontWeight {
	case "normal":
		classes = append(classes, "font-normal")
	case "medium":
		classes = append(classes, "font-medium")
	case "semibold":
		classes = append(classes, "font-semibold")
	case "bold":
		classes = append(classes, "font-bold")
	}

	if style.Rounded != "" {
		switch style.Rounded {
		case StyleToggleOn:
			classes = append(classes, "rounded")
		case "sm", "md", "lg", "full":
			classes = append(classes, "rounded-"+string(style.Rounded))
		}
	}

	if style.Shadow != "" {
		switch style.Shadow {
		case StyleToggleOn:
			classes = append(classes, "shadow")
		case "sm", "md", "lg":
			classes = append(classes, "shadow-"+string(style.Shadow))
		}
	}

	if style.Border {
		classes = append(classes, "border", "border-neutral-200", "dark:border-neutral-700")
	}

	if style.Padding != "" {
		if c, ok := paddingClasses[style.Padding]; ok {
			classes = append(classes, c)
		}
	}
	if style.Margin != "" {
		if c, ok := marginClasses[style.Margin]; ok {
			classes = append(classes, c)
		}
	}

	return strings.Join(classes, " ")
}

// InlineStyles returns property/value pairs that cannot be expressed as
// class directives (custom colors, dimensions, opacity).
func InlineStyles(style *DisplayStyle) map[string]string {
	if style == nil {
		return map[string]string{}
	}
	inline := map[string]string{}
	if style.TextColor != "" {
		inline["color"] = style.TextColor
	}
	if style.BgColor != "" {
		inline["background-color"] = style.BgColor
	}
	if style.BorderColor != "" {
		inline["border-color"] = style.BorderColor
	}
	if style.Width != "" {
		inline["width"] = style.Width
	}
	if style.Height != "" {
		inline["height"] = style.Height
	}
	if style.Opacity != nil {
		inline["opacity"] = strconv.FormatFloat(*style.Opacity, 'f', -1, 64)
	}
	return inline
}

// cn joins non-empty class fragments with a single space.
func cn(fragments ...string) string {
	var parts []string
	for _, f := range fragments {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
