package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"assetbook/internal/bookingform/permissions"
	"assetbook/internal/bookingform/service"
	apperrors "assetbook/pkg/errors"
	httputil "assetbook/pkg/http"
	"assetbook/pkg/logger"
	"assetbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	HeaderUserID         = "X-User-ID"
	HeaderOrganizationID = "X-Organization-ID"
	HeaderUserRoles      = "X-User-Roles"
	HeaderTimeZone       = "X-Time-Zone"

	QueryAction   = "action"
	QueryStatus   = "status"
	QueryIntent   = "intent"
	QueryTimeZone = "tz"
)

type BookingFormHandler struct {
	service service.BookingFormService
	log     *logger.Logger
}

func NewBookingFormHandler(service service.BookingFormService, log *logger.Logger) *BookingFormHandler {
	return &BookingFormHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingFormHandler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	action := model.Action(strings.TrimSpace(query.Get(QueryAction)))
	if action == "" {
		h.writeError(w, "Validate", apperrors.InvalidInput("action query parameter is required"))
		return
	}
	status := model.BookingStatus(strings.ToUpper(strings.TrimSpace(query.Get(QueryStatus))))

	var form model.BookingForm
	if err := decodeBody(r, &form); err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	input, err := h.service.Validate(r.Context(), action, status, &form, hintsFrom(r))
	if err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	if err := httputil.WriteSuccess(w, input); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingFormHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	intent := model.Intent(strings.TrimSpace(r.URL.Query().Get(QueryIntent)))
	if intent == "" {
		h.writeError(w, "Submit", apperrors.InvalidInput("intent query parameter is required"))
		return
	}

	var form model.BookingForm
	if err := decodeBody(r, &form); err != nil {
		h.writeError(w, "Submit", err)
		return
	}

	submission, err := h.service.Submit(r.Context(), intent, &form, viewerFrom(r), hintsFrom(r))
	if err != nil {
		h.writeError(w, "Submit", err)
		return
	}

	if err := httputil.WriteAccepted(w, submission); err != nil {
		h.log.Error("failed to write accepted response", "handler", "Submit", "operation", "WriteAccepted", "error", err)
	}
}

func (h *BookingFormHandler) AdjustEndDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.EndDateAdjustment
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "AdjustEndDate", err)
		return
	}

	if err := httputil.WriteSuccess(w, h.service.AdjustEndDate(req)); err != nil {
		h.log.Error("failed to write success response", "handler", "AdjustEndDate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingFormHandler) NewBookingControls(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.NewBookingControls(viewerFrom(r))); err != nil {
		h.log.Error("failed to write success response", "handler", "NewBookingControls", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingFormHandler) Controls(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	controls, err := h.service.Controls(r.Context(), id, viewerFrom(r))
	if err != nil {
		h.writeError(w, "Controls", err)
		return
	}

	if err := httputil.WriteSuccess(w, controls); err != nil {
		h.log.Error("failed to write success response", "handler", "Controls", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingFormHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.New(apperrors.CodeBadRequest, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}

// viewerFrom reads the identity the gateway attaches to every request.
func viewerFrom(r *http.Request) model.Viewer {
	var roles []string
	if raw := r.Header.Get(HeaderUserRoles); raw != "" {
		roles = strings.Split(raw, ",")
	}
	return model.Viewer{
		UserID:         strings.TrimSpace(r.Header.Get(HeaderUserID)),
		OrganizationID: strings.TrimSpace(r.Header.Get(HeaderOrganizationID)),
		Roles:          permissions.ParseRoles(roles),
	}
}

// hintsFrom prefers the header over the query parameter.
func hintsFrom(r *http.Request) model.Hints {
	tz := strings.TrimSpace(r.Header.Get(HeaderTimeZone))
	if tz == "" {
		tz = strings.TrimSpace(r.URL.Query().Get(QueryTimeZone))
	}
	return model.Hints{TimeZone: tz}
}
