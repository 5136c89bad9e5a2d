package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
	"github.com/goliatone/go-timedash/components/widgetspec/commands"
	"github.com/goliatone/go-timedash/components/widgetspec/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Import  gocommand.Commander[commands.ImportWidgetRequest]
	Update  gocommand.Commander[commands.UpdateWidgetRequest]
	Remove  gocommand.Commander[commands.RemoveWidgetRequest]
	Refresh gocommand.Commander[commands.RefreshWidgetRequest]
	Widget  gocommand.Querier[queries.WidgetInput, widgetspec.StoredWidget]
	Widgets gocommand.Querier[queries.WidgetListInput, queries.WidgetListResult]
	Render  gocommand.Querier[queries.RenderInput, widgetspec.RenderResult]
}

// HandleValidateWidget runs the validation gate without storing anything and
// reports the full error/warning lists.
func (h *Handlers) HandleValidateWidget(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Raw string `json:"raw"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, result := widgetspec.ParseSpec(payload.Raw)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleImportWidget(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Raw         string   `json:"raw"`
		Name        string   `json:"name,omitempty"`
		Description string   `json:"description,omitempty"`
		Category    string   `json:"category,omitempty"`
		Tags        []string `json:"tags,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err := h.Import.Execute(r.Context(), commands.ImportWidgetRequest{
		Raw:         payload.Raw,
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
		Tags:        payload.Tags,
	})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload struct {
		Raw         string   `json:"raw,omitempty"`
		Name        string   `json:"name,omitempty"`
		Description string   `json:"description,omitempty"`
		Category    string   `json:"category,omitempty"`
		Tags        []string `json:"tags,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err := h.Update.Execute(r.Context(), commands.UpdateWidgetRequest{
		WidgetID:    widgetID,
		Raw:         payload.Raw,
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
		Tags:        payload.Tags,
	})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	if err := h.Remove.Execute(r.Context(), commands.RemoveWidgetRequest{WidgetID: widgetID}); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleRefreshWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshWidgetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Refresh.Execute(r.Context(), payload); err != nil {
		writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleGetWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	widget, err := h.Widget.Query(r.Context(), queries.WidgetInput{WidgetID: widgetID})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, widget)
}

// HandleExportWidget returns the stored spec document as pretty-printed JSON
// suitable for re-import.
func (h *Handlers) HandleExportWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	widget, err := h.Widget.Query(r.Context(), queries.WidgetInput{WidgetID: widgetID})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	raw, err := widgetspec.ExportSpec(&widget.Spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+widget.Slug+".json\"")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(raw))
}

func (h *Handlers) HandleListWidgets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.Widgets.Query(r.Context(), queries.WidgetListInput{
		Category: query.Get("category"),
		Tag:      query.Get("tag"),
		Search:   query.Get("search"),
	})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleRenderWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload struct {
		Slots []widgetspec.Slot `json:"slots"`
		Prefs struct {
			TimeFormat  string `json:"timeFormat,omitempty"`
			ShowSeconds bool   `json:"showSeconds,omitempty"`
		} `json:"prefs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	prefs := widgetspec.FormatPrefs{
		TimeFormat:  widgetspec.TimeFormat24h,
		ShowSeconds: payload.Prefs.ShowSeconds,
	}
	if payload.Prefs.TimeFormat == string(widgetspec.TimeFormat12h) {
		prefs.TimeFormat = widgetspec.TimeFormat12h
	}
	result, err := h.Render.Query(r.Context(), queries.RenderInput{
		WidgetID: widgetID,
		Slots:    payload.Slots,
		Prefs:    prefs,
	})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleListPresets returns the built-in preset catalog.
func (h *Handlers) HandleListPresets(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, widgetspec.PresetsByCategory(category))
		return
	}
	writeJSON(w, http.StatusOK, widgetspec.PresetWidgets())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeCommandError maps domain errors onto HTTP statuses. Validation
// failures carry the full result so editors can surface per-path errors.
func writeCommandError(w http.ResponseWriter, err error) {
	var validationErr *widgetspec.ValidationFailedError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusUnprocessableEntity, validationErr.Result)
		return
	}
	if errors.Is(err, widgetspec.ErrWidgetNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
