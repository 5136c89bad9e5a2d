package widgetspec

import (
	"strconv"
	"strings"
)

var gapClasses = map[GapSize]string{
	GapNone: "gap-0",
	GapXS:   "gap-1",
	GapSM:   "gap-2",
	GapMD:   "gap-3",
	GapLG:   "gap-4",
	GapXL:   "gap-6",
}

var paddingClasses = map[GapSize]string{
	GapNone: "p-0",
	GapXS:   "p-1",
	GapSM:   "p-2",
	GapMD:   "p-3",
	GapLG:   "p-4",
	GapXL:   "p-6",
}

// LayoutClasses maps an abstract layout descriptor to concrete arrangement
// directives. The class strings are opaque to the render logic; only their
// semantic meaning matters.
func LayoutClasses(layout LayoutConfig) string {
	gap := layout.Gap
	if gap == "" {
		gap = GapMD
	}
	padding := layout.Padding
	if padding == "" {
		padding = GapNone
	}

	var classes []string

	switch layout.Type {
	case LayoutGrid:
		classes = append(classes, "grid")
		cols := layout.Columns
		if cols == nil || cols.Auto {
			// Responsive default ladder: one column on narrow viewports,
			// up to three on wide.
			classes = append(classes, "grid-cols-1", "sm:grid-cols-2", "lg:grid-cols-3")
		} else if cols.Count > 0 {
			classes = append(classes, "grid-cols-"+strconv.Itoa(cols.Count))
		}
		if rows := layout.Rows; rows != nil && !rows.Auto && rows.Count > 0 {
			classes = append(classes, "grid-rows-"+strconv.Itoa(rows.Count))
		}

	case LayoutFlex:
		classes = append(classes, "flex")
		if layout.Direction == "column" {
			classes = append(classes, "flex-col")
		} else {
			classes = append(classes, "flex-row")
		}
		if layout.Wrap {
			classes = append(classes, "flex-wrap")
		}
		if c := alignClass(layout.Align); c != "" {
			classes = append(classes, c)
		}
		if c := justifyClass(layout.Justify); c != "" {
			classes = append(classes, c)
		}

	case LayoutStack:
		classes = append(classes, "flex", "flex-col")

	case LayoutSingle:
		// Exactly one child expected; no arrangement.
	}

	classes = append(classes, gapClasses[gap], paddingClasses[padding])
	return strings.Join(classes, " ")
}

// ItemClasses returns per-item directives for children of a layout.
func ItemClasses(layout LayoutConfig) string {
	if layout.Type == LayoutFlex && layout.Direction != "column" {
		return "flex items-center gap-2"
	}
	return ""
}

func alignClass(align FlexAlign) string {
	switch align {
	case AlignStart:
		return "items-start"
	case AlignCenter:
		return "items-center"
	case AlignEnd:
		return "items-end"
	case AlignStretch:
		return "items-stretch"
	case AlignBaseline:
		return "items-baseline"
	}
	return ""
}

func justifyClass(justify FlexJustify) string {
	switch justify {
	case JustifyStart:
		return "justify-start"
	case JustifyCenter:
		return "justify-center"
	case JustifyEnd:
		return "justify-end"
	case JustifyBetween:
		return "justify-between"
	case JustifyAround:
		return "justify-around"
	case JustifyEvenly:
		return "justify-evenly"
	}
	return ""
}
