package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
	"github.com/goliatone/go-timedash/components/widgetspec/commands"
	"github.com/goliatone/go-timedash/components/widgetspec/queries"
)

// SlotResolver converts a router.Context into the viewer's timezone slots and
// format preferences. Applications supply their own resolver; the default
// reads request locals.
type SlotResolver func(router.Context) ([]widgetspec.Slot, widgetspec.FormatPrefs)

// Config wires go-router with the widget command/query surface.
type Config[T any] struct {
	Router       router.Router[T]
	Import       gocommand.Commander[commands.ImportWidgetRequest]
	Update       gocommand.Commander[commands.UpdateWidgetRequest]
	Remove       gocommand.Commander[commands.RemoveWidgetRequest]
	Refresh      gocommand.Commander[commands.RefreshWidgetRequest]
	Widget       gocommand.Querier[queries.WidgetInput, widgetspec.StoredWidget]
	Widgets      gocommand.Querier[queries.WidgetListInput, queries.WidgetListResult]
	Render       gocommand.Querier[queries.RenderInput, widgetspec.RenderResult]
	Renderer     widgetspec.Renderer
	Timeline     *widgetspec.TimelineChart
	Broadcast    *widgetspec.SnapshotBroadcaster
	SlotResolver SlotResolver
	BasePath     string
	Routes       RouteConfig
}

// RouteConfig customizes the relative paths used for widget endpoints.
type RouteConfig struct {
	Widgets   string
	WidgetID  string
	Validate  string
	Export    string
	Render    string
	HTML      string
	Timeline  string
	Refresh   string
	Presets   string
	WebSocket string
}

// Register mounts widget routes (JSON, HTML, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Widget == nil || cfg.Widgets == nil {
		return errors.New("gorouter: widget queries are required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/widgets"
	}
	slotResolver := cfg.SlotResolver
	if slotResolver == nil {
		slotResolver = defaultSlotResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		result, err := cfg.Widgets.Query(ctx.Context(), queries.WidgetListInput{
			Category: ctx.Query("category"),
			Tag:      ctx.Query("tag"),
			Search:   ctx.Query("search"),
		})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	group.Get(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		widget, err := cfg.Widget.Query(ctx.Context(), queries.WidgetInput{WidgetID: ctx.Param("id")})
		if err != nil {
			return respondDomainError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, widget)
	}))

	group.Get(routes.Export, router.WrapHandler(func(ctx router.Context) error {
		widget, err := cfg.Widget.Query(ctx.Context(), queries.WidgetInput{WidgetID: ctx.Param("id")})
		if err != nil {
			return respondDomainError(ctx, err)
		}
		raw, err := widgetspec.ExportSpec(&widget.Spec)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "application/json")
		ctx.SetHeader("Content-Disposition", "attachment; filename=\""+widget.Slug+".json\"")
		return ctx.Send([]byte(raw))
	}))

	group.Post(routes.Validate, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Raw string `json:"raw"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		_, result := widgetspec.ParseSpec(payload.Raw)
		return ctx.JSON(http.StatusOK, result)
	}))

	group.Get(routes.Presets, router.WrapHandler(func(ctx router.Context) error {
		if category := ctx.Query("category"); category != "" {
			return ctx.JSON(http.StatusOK, widgetspec.PresetsByCategory(category))
		}
		return ctx.JSON(http.StatusOK, widgetspec.PresetWidgets())
	}))

	if cfg.Import != nil {
		group.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.ImportWidgetRequest
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			if err := cfg.Import.Execute(ctx.Context(), payload); err != nil {
				return respondDomainError(ctx, err)
			}
			return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
		}))
	}

	if cfg.Update != nil {
		group.Put(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.UpdateWidgetRequest
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			payload.WidgetID = ctx.Param("id")
			if err := cfg.Update.Execute(ctx.Context(), payload); err != nil {
				return respondDomainError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
		}))
	}

	if cfg.Remove != nil {
		group.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
			id := ctx.Param("id")
			if id == "" {
				return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
			}
			if err := cfg.Remove.Execute(ctx.Context(), commands.RemoveWidgetRequest{WidgetID: id}); err != nil {
				return respondDomainError(ctx, err)
			}
			return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
		}))
	}

	if cfg.Refresh != nil {
		group.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
			var payload commands.RefreshWidgetRequest
			if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			if err := cfg.Refresh.Execute(ctx.Context(), payload); err != nil {
				return respondDomainError(ctx, err)
			}
			return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
		}))
	}

	if cfg.Render != nil {
		group.Get(routes.Render, router.WrapHandler(func(ctx router.Context) error {
			slots, prefs := slotResolver(ctx)
			result, err := cfg.Render.Query(ctx.Context(), queries.RenderInput{
				WidgetID: ctx.Param("id"),
				Slots:    slots,
				Prefs:    prefs,
			})
			if err != nil {
				return respondDomainError(ctx, err)
			}
			return ctx.JSON(http.StatusOK, result)
		}))
	}

	if cfg.Render != nil && cfg.Renderer != nil {
		group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
			slots, prefs := slotResolver(ctx)
			result, err := cfg.Render.Query(ctx.Context(), queries.RenderInput{
				WidgetID: ctx.Param("id"),
				Slots:    slots,
				Prefs:    prefs,
			})
			if err != nil {
				return respondDomainError(ctx, err)
			}
			var buf bytes.Buffer
			if _, err := cfg.Renderer.Render("widget", map[string]any{"result": result}, &buf); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send(buf.Bytes())
		}))
	}

	if cfg.Timeline != nil {
		group.Get(routes.Timeline, router.WrapHandler(func(ctx router.Context) error {
			slots, _ := slotResolver(ctx)
			html, err := cfg.Timeline.Render(slots, time.Now())
			if err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send([]byte(html))
		}))
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerWebSocket[T any](r router.Router[T], broadcast *widgetspec.SnapshotBroadcaster, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := broadcast.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// defaultSlotResolver reads slots and prefs from request locals, where the
// application's session middleware is expected to stash them.
func defaultSlotResolver(ctx router.Context) ([]widgetspec.Slot, widgetspec.FormatPrefs) {
	prefs := widgetspec.FormatPrefs{TimeFormat: widgetspec.TimeFormat24h}
	var slots []widgetspec.Slot
	if v, ok := ctx.Locals("slots").([]widgetspec.Slot); ok {
		slots = v
	}
	if v, ok := ctx.Locals("time_format").(string); ok && strings.EqualFold(v, string(widgetspec.TimeFormat12h)) {
		prefs.TimeFormat = widgetspec.TimeFormat12h
	}
	if v, ok := ctx.Locals("show_seconds").(bool); ok {
		prefs.ShowSeconds = v
	}
	return slots, prefs
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func respondDomainError(ctx router.Context, err error) error {
	var validationErr *widgetspec.ValidationFailedError
	if errors.As(err, &validationErr) {
		return ctx.JSON(http.StatusUnprocessableEntity, validationErr.Result)
	}
	if errors.Is(err, widgetspec.ErrWidgetNotFound) {
		return respondError(ctx, http.StatusNotFound, err)
	}
	return respondError(ctx, http.StatusInternalServerError, err)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Widgets == "" {
		routes.Widgets = "/"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/:id"
	}
	if routes.Validate == "" {
		routes.Validate = "/validate"
	}
	if routes.Export == "" {
		routes.Export = "/:id/export"
	}
	if routes.Render == "" {
		routes.Render = "/:id/render"
	}
	if routes.HTML == "" {
		routes.HTML = "/:id/html"
	}
	if routes.Timeline == "" {
		routes.Timeline = "/timeline"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/refresh"
	}
	if routes.Presets == "" {
		routes.Presets = "/presets"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
