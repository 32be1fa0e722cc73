package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"busbook/internal/sessions/service"
	httputil "busbook/pkg/http"
	"busbook/pkg/logger"
	"busbook/pkg/model"
	"busbook/pkg/sanitizer"
)

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

type searchRequest struct {
	Kind          string `json:"kind"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Date          string `json:"date"`
	ServiceNumber string `json:"service_number"`
}

type seatRequest struct {
	SeatID string `json:"seat_id"`
}

type replaceSeatsRequest struct {
	SeatIDs []string `json:"seat_ids"`
}

type passengerRequest struct {
	FullName string `json:"full_name"`
	Gender   string `json:"gender"`
	Age      string `json:"age"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snap, err := h.service.Create(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, snap); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "Search")
		return
	}

	query := &model.SearchQuery{
		Kind:          sanitizer.TrimAndNormalize(req.Kind),
		Origin:        sanitizer.NormalizeCity(req.Origin),
		Destination:   sanitizer.NormalizeCity(req.Destination),
		Date:          sanitizer.TrimAndNormalize(req.Date),
		ServiceNumber: sanitizer.TrimAndNormalize(req.ServiceNumber),
	}

	snap, err := h.service.Search(r.Context(), ps.ByName("id"), query)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SelectTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req struct {
		TripID string `json:"trip_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "SelectTrip")
		return
	}

	snap, err := h.service.SelectTrip(r.Context(), ps.ByName("id"), req.TripID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SelectTrip", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "SelectTrip", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) ToggleSeat(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req seatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "ToggleSeat")
		return
	}

	snap, err := h.service.ToggleSeat(r.Context(), ps.ByName("id"), req.SeatID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ToggleSeat", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "ToggleSeat", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) ReplaceSeats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req replaceSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "ReplaceSeats")
		return
	}

	snap, err := h.service.ReplaceSeats(r.Context(), ps.ByName("id"), req.SeatIDs)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ReplaceSeats", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "ReplaceSeats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) BeginPassengerDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.BeginPassengerDetails(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BeginPassengerDetails", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "BeginPassengerDetails", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) UpdateDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req passengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "UpdateDraft")
		return
	}

	seatID := ps.ByName("seat")
	draft := &model.PassengerDraft{
		SeatID:   seatID,
		FullName: sanitizer.NormalizeName(req.FullName),
		Gender:   sanitizer.TrimAndNormalize(req.Gender),
		Age:      sanitizer.TrimAndNormalize(req.Age),
		Mobile:   req.Mobile,
		Email:    sanitizer.TrimAndNormalize(req.Email),
	}

	snap, err := h.service.UpdateDraft(r.Context(), ps.ByName("id"), seatID, draft)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateDraft", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateDraft", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) SubmitBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.SubmitBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SubmitBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, snap); err != nil {
		h.log.Error("failed to write created response", "handler", "SubmitBooking", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.Back(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Back", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "Back", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.Reset(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Reset", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", "Reset", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) writeBadBody(w http.ResponseWriter, handlerName string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "operation", "WriteJSON", "error", err)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/sessions", h.Create)
	router.GET("/api/v1/sessions/:id", h.Get)
	router.POST("/api/v1/sessions/:id/search", h.Search)
	router.POST("/api/v1/sessions/:id/trip", h.SelectTrip)
	router.POST("/api/v1/sessions/:id/seats/toggle", h.ToggleSeat)
	router.PUT("/api/v1/sessions/:id/seats", h.ReplaceSeats)
	router.POST("/api/v1/sessions/:id/passengers", h.BeginPassengerDetails)
	router.PUT("/api/v1/sessions/:id/passengers/:seat", h.UpdateDraft)
	router.POST("/api/v1/sessions/:id/booking", h.SubmitBooking)
	router.POST("/api/v1/sessions/:id/back", h.Back)
	router.POST("/api/v1/sessions/:id/reset", h.Reset)
}
