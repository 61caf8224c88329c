package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/insativity/portal/internal/events"
	httperrors "github.com/insativity/portal/internal/http/errors"
	"github.com/insativity/portal/internal/store"
)

// Handler serves the event service request surface: a single endpoint
// dispatched on HTTP method plus an action query parameter, answering with
// the {status, message, data, errors} envelope.
type Handler struct {
	svc *events.Service
}

func NewHandler(svc *events.Service) *Handler {
	return &Handler{svc: svc}
}

type envelope struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

// Events is the single entry point for all event operations.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action == "" {
		h.fail(w, r, http.StatusBadRequest, errors.New("missing action"), "Missing 'action' parameter")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, action)
	case http.MethodPost:
		h.handleCreate(w, r, action)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdate(w, r, action)
	case http.MethodDelete:
		h.handleDelete(w, r, action)
	default:
		h.fail(w, r, http.StatusMethodNotAllowed, errors.New(r.Method), "Unsupported HTTP method")
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, action string) {
	ctx := r.Context()

	switch action {
	case "get":
		id, ok := h.eventID(w, r)
		if !ok {
			return
		}
		h.succeed(w, http.StatusOK, "", h.svc.Get(ctx, id))
	case "getAll":
		h.succeed(w, http.StatusOK, "", h.svc.GetAll(ctx))
	case "getByClub":
		club := r.URL.Query().Get("club")
		if club == "" {
			h.fail(w, r, http.StatusBadRequest, errors.New("missing club"), "Missing club name")
			return
		}
		h.succeed(w, http.StatusOK, "", h.svc.ByClub(ctx, club))
	case "getByClubAndStatus":
		club := r.URL.Query().Get("club")
		status := r.URL.Query().Get("status")
		if club == "" || status == "" {
			h.fail(w, r, http.StatusBadRequest, errors.New("missing club or status"), "Missing club or status")
			return
		}
		h.succeed(w, http.StatusOK, "", h.svc.ByClubAndStatus(ctx, club, store.Status(status)))
	case "getByStatus":
		status := r.URL.Query().Get("status")
		if status == "" {
			h.fail(w, r, http.StatusBadRequest, errors.New("missing status"), "Missing status")
			return
		}
		h.succeed(w, http.StatusOK, "", h.svc.ByStatus(ctx, store.Status(status)))
	case "getFeatured":
		h.succeed(w, http.StatusOK, "", h.svc.Featured(ctx))
	default:
		h.fail(w, r, http.StatusBadRequest, errors.New(action), "Unsupported GET action")
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request, action string) {
	if action != "create" {
		h.fail(w, r, http.StatusBadRequest, errors.New(action), "Unsupported POST action")
		return
	}

	var payload events.CreatePayload
	if !h.decodeBody(w, r, &payload) {
		return
	}

	created, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.succeed(w, http.StatusCreated, "Event created successfully", created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, action string) {
	if action != "update" {
		h.fail(w, r, http.StatusBadRequest, errors.New(action), "Unsupported update action")
		return
	}

	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var patch events.Patch
	if !h.decodeBody(w, r, &patch) {
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.succeed(w, http.StatusOK, "Event updated successfully", updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, action string) {
	if action != "delete" {
		h.fail(w, r, http.StatusBadRequest, errors.New(action), "Unsupported DELETE action")
		return
	}

	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.succeed(w, http.StatusOK, "Event deleted successfully", map[string]any{
		"id":      id,
		"deleted": true,
	})
}

func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		h.fail(w, r, http.StatusBadRequest, errors.New("missing id"), "Missing event ID")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.fail(w, r, http.StatusBadRequest, err, "Invalid event ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err, "Failed to read request body")
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.fail(w, r, http.StatusBadRequest, err, "Invalid JSON body")
		return false
	}
	return true
}

// serviceError maps the store error taxonomy onto status codes and the
// error envelope.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *store.ValidationError
		resolution *store.ClubResolutionError
		notFound   *store.NotFoundError
		persist    *store.PersistenceError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &resolution):
		h.fail(w, r, http.StatusBadRequest, err, err.Error())
	case errors.As(err, &notFound):
		h.fail(w, r, http.StatusNotFound, err, err.Error())
	case errors.As(err, &persist):
		httperrors.LogError(r, "event persistence failed", err)
		h.write(w, http.StatusInternalServerError, envelope{
			Status: "error",
			Errors: []string{"failed to persist event data"},
		})
	default:
		h.fail(w, r, http.StatusBadRequest, err, err.Error())
	}
}

func (h *Handler) succeed(w http.ResponseWriter, code int, message string, data any) {
	h.write(w, code, envelope{
		Status:  "success",
		Message: message,
		Data:    data,
		Errors:  []string{},
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, code int, err error, message string) {
	httperrors.LogWarn(r, message, err)
	h.write(w, code, envelope{
		Status: "error",
		Errors: []string{message},
	})
}

func (h *Handler) write(w http.ResponseWriter, code int, env envelope) {
	if env.Errors == nil {
		env.Errors = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		httperrors.LogErrorBare("encode response envelope", err)
	}
}
