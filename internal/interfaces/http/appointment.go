package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"carteira/internal/domain/appointment"
	"carteira/internal/shared/middleware"
)

type AppointmentHandler struct {
	appointments *appointment.Service
}

func NewAppointmentHandler(appointments *appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// HandleAppointments routes requests to the appropriate handler based on method
func (h *AppointmentHandler) HandleAppointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListAppointments(w, r)
	case http.MethodPost:
		h.handleRequestAppointment(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListAppointments returns the authenticated user's appointments
func (h *AppointmentHandler) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	appointments, err := h.appointments.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing appointments for user %s: %v", userID, err)
		http.Error(w, "Failed to list appointments", http.StatusInternalServerError)
		return
	}

	if appointments == nil {
		appointments = []*appointment.Appointment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointments)
}

// handleRequestAppointment schedules a new consulting session request
func (h *AppointmentHandler) handleRequestAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var params appointment.RequestParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.appointments.Request(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, appointment.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error requesting appointment for user %s: %v", userID, err)
		http.Error(w, "Failed to request appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}
