package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
	"github.com/goliatone/go-regform/pkg/variant"
)

type handlers struct {
	orch           *orchestrator.Orchestrator
	logger         *slog.Logger
	defaultVariant string
	maxBodyBytes   int64
}

// FormSummary describes one variant in GET /api/forms.
type FormSummary struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Path        string   `json:"path"`
	Fields      []string `json:"fields"`
}

func (h *handlers) redirectDefault(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/forms/"+h.defaultVariant, http.StatusFound)
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"variants": len(h.orch.Variants().List()),
	})
}

// form serves the browser flow: POST processes, any other method renders
// the blank form.
func (h *handlers) form(w http.ResponseWriter, r *http.Request) {
	values, ok := h.readForm(w, r)
	if !ok {
		return
	}
	resp, err := h.orch.Handle(r.Context(), orchestrator.Request{
		Variant:      chi.URLParam(r, "variant"),
		Method:       r.Method,
		Values:       values,
		Accept:       r.Header.Get("Accept"),
		Action:       r.URL.Path,
		ThemeVariant: r.URL.Query().Get("theme"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Body)
}

// submit is the JSON API: 201 for accepted submissions, 422 for rejected.
func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	values, ok := h.readForm(w, r)
	if !ok {
		return
	}
	resp, err := h.orch.Handle(r.Context(), orchestrator.Request{
		Variant:  chi.URLParam(r, "variant"),
		Method:   http.MethodPost,
		Values:   values,
		Renderer: jsonview.Name,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusUnprocessableEntity
	if resp.Accepted() {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(resp.Body)
}

func (h *handlers) listForms(w http.ResponseWriter, _ *http.Request) {
	all := h.orch.Variants().All()
	out := make([]FormSummary, 0, len(all))
	for _, v := range all {
		out = append(out, FormSummary{
			Name:        v.Name,
			Title:       v.Title,
			Description: v.Description,
			Path:        openapi.SubmissionsPath(v.Name),
			Fields:      v.FieldNames(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) readForm(w http.ResponseWriter, r *http.Request) (url.Values, bool) {
	if r.Method != http.MethodPost {
		return nil, true
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return nil, false
	}
	return r.PostForm, true
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, http.StatusText(status), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, variant.ErrUnknownVariant):
		return http.StatusNotFound
	case errors.Is(err, orchestrator.ErrUnknownTheme):
		return http.StatusBadRequest
	case errors.Is(err, render.ErrUnknownRenderer):
		return http.StatusNotAcceptable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
