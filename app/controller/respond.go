package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"bodyshop-work-order/models"
	"bodyshop-work-order/projection"
	"bodyshop-work-order/repository"
	"bodyshop-work-order/workorder"
)

var validate = validator.New()

// WorkOrderResponse is a session with its derived views
type WorkOrderResponse struct {
	ID                string             `json:"id"`
	State             workorder.State    `json:"state"`
	Derived           projection.Derived `json:"derived"`
	MissingFields     []string           `json:"missingFields"`
	HasVehicleDetails bool               `json:"hasVehicleDetails"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

func newWorkOrderResponse(session repository.Session, now time.Time) WorkOrderResponse {
	missing := session.State.MissingFields()
	if missing == nil {
		missing = []string{}
	}
	return WorkOrderResponse{
		ID:                session.ID,
		State:             session.State,
		Derived:           projection.Derive(session.State.Snapshot(), now),
		MissingFields:     missing,
		HasVehicleDetails: session.State.HasVehicleDetails(),
		UpdatedAt:         session.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Status: "error", Message: message})
}

// writeSessionError maps repository and state errors to HTTP statuses
func writeSessionError(w http.ResponseWriter, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Work order not found")
	case errors.Is(err, workorder.ErrUnknownField), errors.Is(err, workorder.ErrUnknownJobType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s failed: %v", op, err))
	}
}

// decodeBody decodes a JSON body into dst and validates its tags
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter, op, method string) {
	log.Printf("❌ %s: Method not allowed: %s", op, method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
