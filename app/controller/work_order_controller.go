package controller

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"bodyshop-work-order/models"
	"bodyshop-work-order/projection"
	"bodyshop-work-order/repository"
	"bodyshop-work-order/workorder"
)

// WorkOrderController handles HTTP requests that edit a work order form
type WorkOrderController struct {
	sessions repository.SessionRepositoryInterface
	now      func() time.Time
}

// NewWorkOrderController creates a new WorkOrderController
func NewWorkOrderController(sessions repository.SessionRepositoryInterface) *WorkOrderController {
	return &WorkOrderController{
		sessions: sessions,
		now:      time.Now,
	}
}

// Create handles POST /work-orders
// Opens a fresh form with one blank Repair item
func (c *WorkOrderController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateWorkOrder: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "CreateWorkOrder", r.Method)
		return
	}

	session, err := c.sessions.Create(r.Context())
	if err != nil {
		writeSessionError(w, "CreateWorkOrder", err)
		return
	}

	log.Printf("✅ CreateWorkOrder: id=%s, order=%s", session.ID, session.State.OrderNumber)
	writeJSON(w, http.StatusCreated, newWorkOrderResponse(session, c.now()))
}

// Get handles GET /work-orders/{id}
func (c *WorkOrderController) Get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := c.sessions.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, "GetWorkOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, newWorkOrderResponse(session, c.now()))
}

// Delete handles DELETE /work-orders/{id}
// Discards the form when the clerk navigates away
func (c *WorkOrderController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.sessions.Delete(r.Context(), id); err != nil {
		writeSessionError(w, "DeleteWorkOrder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateCustomer handles PUT /work-orders/{id}/customer
func (c *WorkOrderController) UpdateCustomer(w http.ResponseWriter, r *http.Request, id string) {
	var req models.Customer
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ UpdateCustomer: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.apply(r.Context(), w, "UpdateCustomer", id, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		return st.WithCustomer(req), nil
	})
}

// UpdateVehicle handles PUT /work-orders/{id}/vehicle
// Writes the four vehicle fields. VIN decoding is triggered only by the VIN endpoint.
func (c *WorkOrderController) UpdateVehicle(w http.ResponseWriter, r *http.Request, id string) {
	var req models.Vehicle
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ UpdateVehicle: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.apply(r.Context(), w, "UpdateVehicle", id, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		return st.WithVehicle(req), nil
	})
}

// UpdateDates handles PUT /work-orders/{id}/dates
// Dates are MM/DD strings; malformed values are stored and simply yield no duration.
func (c *WorkOrderController) UpdateDates(w http.ResponseWriter, r *http.Request, id string) {
	var req models.DateRange
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ UpdateDates: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.apply(r.Context(), w, "UpdateDates", id, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		return st.WithDates(req), nil
	})
}

// UpdateNotes handles PUT /work-orders/{id}/notes
func (c *WorkOrderController) UpdateNotes(w http.ResponseWriter, r *http.Request, id string) {
	var req models.NotesRequest
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ UpdateNotes: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.apply(r.Context(), w, "UpdateNotes", id, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		return st.WithNotes(req.Notes), nil
	})
}

// AddItem handles POST /work-orders/{id}/items
func (c *WorkOrderController) AddItem(w http.ResponseWriter, r *http.Request, id string) {
	c.apply(r.Context(), w, "AddItem", id, func(st workorder.State, ids workorder.IDGenerator) (workorder.State, error) {
		return st.AddItem(ids), nil
	})
}

// UpdateItem handles PATCH /work-orders/{id}/items/{itemId}
func (c *WorkOrderController) UpdateItem(w http.ResponseWriter, r *http.Request, id, rawItemID string) {
	itemID, err := strconv.ParseInt(rawItemID, 10, 64)
	if err != nil {
		log.Printf("❌ UpdateItem: Invalid item id %q", rawItemID)
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req models.UpdateItemRequest
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ UpdateItem: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("📋 UpdateItem: session=%s, item=%d, field=%s", id, itemID, req.Field)
	c.apply(r.Context(), w, "UpdateItem", id, func(st workorder.State, ids workorder.IDGenerator) (workorder.State, error) {
		return st.UpdateItem(ids, itemID, models.ItemField(req.Field), req.Value)
	})
}

// RemoveItem handles DELETE /work-orders/{id}/items/{itemId}
func (c *WorkOrderController) RemoveItem(w http.ResponseWriter, r *http.Request, id, rawItemID string) {
	itemID, err := strconv.ParseInt(rawItemID, 10, 64)
	if err != nil {
		log.Printf("❌ RemoveItem: Invalid item id %q", rawItemID)
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}
	c.apply(r.Context(), w, "RemoveItem", id, func(st workorder.State, ids workorder.IDGenerator) (workorder.State, error) {
		return st.RemoveItem(ids, itemID), nil
	})
}

// Reset handles POST /work-orders/{id}/reset
// Clears the form and issues a new order number
func (c *WorkOrderController) Reset(w http.ResponseWriter, r *http.Request, id string) {
	c.apply(r.Context(), w, "ResetWorkOrder", id, func(st workorder.State, ids workorder.IDGenerator) (workorder.State, error) {
		return st.Reset(ids, workorder.NewOrderNumber()), nil
	})
}

// Highlight handles POST /work-orders/{id}/highlight
func (c *WorkOrderController) Highlight(w http.ResponseWriter, r *http.Request, id string) {
	var req models.HighlightRequest
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ Highlight: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.apply(r.Context(), w, "Highlight", id, func(st workorder.State, _ workorder.IDGenerator) (workorder.State, error) {
		return st.WithHighlight(req.Enabled), nil
	})
}

// VehicleDetails handles GET /work-orders/{id}/vehicle-details
// Returns the displayable subset of the last VIN decode
func (c *WorkOrderController) VehicleDetails(w http.ResponseWriter, r *http.Request, id string) {
	session, err := c.sessions.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, "VehicleDetails", err)
		return
	}

	writeJSON(w, http.StatusOK, projection.FilterDisplayableDetails(session.State.VehicleDetails))
}

// apply runs a state transition and answers with the updated work order
func (c *WorkOrderController) apply(ctx context.Context, w http.ResponseWriter, op, id string, fn repository.Transition) {
	session, err := c.sessions.Update(ctx, id, fn)
	if err != nil {
		writeSessionError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newWorkOrderResponse(session, c.now()))
}
