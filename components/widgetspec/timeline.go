package widgetspec

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const timelineChartHeight = "280px"

var sharedTimelineCache = NewChartCache(5 * time.Minute)

// TimelineChart renders a 24-hour working-hours comparison as server-side
// chart HTML. Each slot contributes one series; the bar height at a given
// UTC hour is 1 when that slot is inside its working hours.
type TimelineChart struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// TimelineChartOption customizes chart rendering.
type TimelineChartOption func(*TimelineChart)

// WithTimelineCache injects a render cache.
func WithTimelineCache(cache RenderCache) TimelineChartOption {
	return func(t *TimelineChart) { t.cache = cache }
}

// WithTimelineTheme sets the chart theme (defaults to Westeros).
func WithTimelineTheme(theme string) TimelineChartOption {
	return func(t *TimelineChart) { t.theme = theme }
}

// WithTimelineAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithTimelineAssetsHost(host string) TimelineChartOption {
	return func(t *TimelineChart) { t.assetsHost = host }
}

// NewTimelineChart builds a timeline chart renderer.
func NewTimelineChart(options ...TimelineChartOption) *TimelineChart {
	t := &TimelineChart{
		cache: sharedTimelineCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Render returns chart HTML for the given slots at the given instant. The
// cache key covers the slot configuration and the UTC hour, so the chart is
// re-rendered at most once per hour per configuration.
func (t *TimelineChart) Render(slots []Slot, now time.Time) (string, error) {
	if len(slots) == 0 {
		return "", fmt.Errorf("widgetspec: timeline chart requires at least one slot")
	}
	renderFn := func() (string, error) {
		return t.render(slots, now)
	}
	if t.cache != nil {
		key := fmt.Sprintf("timeline:%s:%d", slotsHash(slots), now.UTC().Hour())
		return t.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (t *TimelineChart) render(slots []Slot, now time.Time) (string, error) {
	bar := charts.NewBar()

	initOpts := opts.Initialization{
		Theme:  t.theme,
		Width:  "100%",
		Height: timelineChartHeight,
	}
	if t.assetsHost != "" {
		initOpts.AssetsHost = t.assetsHost
	}
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Working Hours Overlap",
			Subtitle: now.UTC().Format("Mon, Jan 2 15:04 MST"),
		}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(utcHourLabels())
	for _, slot := range slots {
		bar.AddSeries(seriesLabel(slot), workingHourBars(slot, now))
	}
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "overlap"}))

	return renderChartHTML(bar)
}

func renderChartHTML(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func seriesLabel(slot Slot) string {
	if slot.Label != "" {
		return slot.Label
	}
	return slot.Timezone
}

func utcHourLabels() []string {
	labels := make([]string, 24)
	for h := 0; h < 24; h++ {
		labels[h] = fmt.Sprintf("%02d:00", h)
	}
	return labels
}

// workingHourBars samples each UTC hour and reports 1 when the slot's local
// clock falls inside its working hours.
func workingHourBars(slot Slot, now time.Time) []opts.BarData {
	loc, err := time.LoadLocation(slot.Timezone)
	if err != nil {
		loc = time.UTC
	}
	data := make([]opts.BarData, 24)

	startMinutes, endMinutes := 0, 0
	haveHours := false
	if slot.WorkingHours != nil {
		var okStart, okEnd bool
		startMinutes, okStart = clockMinutes(slot.WorkingHours.Start)
		endMinutes, okEnd = clockMinutes(slot.WorkingHours.End)
		haveHours = okStart && okEnd
	}

	base := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		value := 0
		if haveHours {
			local := base.Add(time.Duration(h) * time.Hour).In(loc)
			minutes := local.Hour()*60 + local.Minute()
			if minutes >= startMinutes && minutes < endMinutes {
				value = 1
			}
		}
		data[h] = opts.BarData{Value: value}
	}
	return data
}
