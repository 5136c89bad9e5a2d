package widgetspec

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Snapshot pairs a render result with the instant it was computed. Each
// tick's snapshot fully supersedes the previous one; there is no queueing.
type Snapshot struct {
	Result RenderResult
	At     time.Time
}

// SnapshotFunc receives each new snapshot.
type SnapshotFunc func(Snapshot)

// EngineOptions configures a render engine for one widget instance.
type EngineOptions struct {
	Renderer   *SpecRenderer
	Spec       *WidgetSpec
	Slots      []Slot
	Prefs      FormatPrefs
	OnSnapshot SnapshotFunc
	// Now overrides the clock; used by tests. Defaults to time.Now.
	Now func() time.Time
}

// Engine drives periodic re-rendering of a single widget at the spec's
// refresh interval. The resolved-item set is rebuilt from scratch each tick
// rather than mutated in place, so no locking of render data is needed.
type Engine struct {
	renderer   *SpecRenderer
	spec       *WidgetSpec
	slots      []Slot
	prefs      FormatPrefs
	interval   time.Duration
	onSnapshot SnapshotFunc
	now        func() time.Time

	mu    sync.Mutex
	alive bool
}

// NewEngine builds an engine. The tick interval comes from
// settings.refreshInterval, defaulting to one second.
func NewEngine(opts EngineOptions) *Engine {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewSpecRenderer(RendererOptions{})
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	interval := time.Second
	if opts.Spec != nil {
		interval = time.Duration(opts.Spec.RefreshInterval()) * time.Millisecond
	}
	return &Engine{
		renderer:   renderer,
		spec:       opts.Spec,
		slots:      opts.Slots,
		prefs:      opts.Prefs,
		interval:   interval,
		onSnapshot: opts.OnSnapshot,
		now:        now,
	}
}

// Key identifies the engine's scheduling configuration: the tuple of
// timezone IDs plus the refresh interval. Swapping either yields a new key,
// which implicitly invalidates timers for the old configuration.
func (e *Engine) Key() string {
	ids := make([]string, len(e.slots))
	for i, slot := range e.slots {
		ids[i] = slot.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, ",") + "@" + strconv.FormatInt(e.interval.Milliseconds(), 10)
}

// Run renders immediately, then on every tick until ctx is cancelled or
// Stop is called. Ticks after teardown never reach the snapshot sink.
func (e *Engine) Run(ctx context.Context) {
	e.mu.Lock()
	e.alive = true
	e.mu.Unlock()

	e.tick(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.Stop()
			return
		case <-ticker.C:
			e.tick(ctx)
		}
	}
}

// Stop marks the engine dead so in-flight ticks are discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.alive = false
	e.mu.Unlock()
}

// Tick computes one snapshot on demand, outside the timer loop.
func (e *Engine) Tick(ctx context.Context) Snapshot {
	at := e.now()
	return Snapshot{
		Result: e.renderer.Render(ctx, e.spec, e.slots, at, e.prefs),
		At:     at,
	}
}

func (e *Engine) tick(ctx context.Context) {
	snapshot := e.Tick(ctx)

	// Liveness gate: a stale tick for a torn-down widget must not write
	// into a live render target.
	e.mu.Lock()
	alive := e.alive
	e.mu.Unlock()
	if !alive || e.onSnapshot == nil {
		return
	}
	e.onSnapshot(snapshot)
}
