package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"bodyshop-work-order/models"
	"bodyshop-work-order/repository"
	"bodyshop-work-order/service"
)

const defaultIssuedLimit = 50

// PrintController handles rendering and exporting work orders
type PrintController struct {
	sessions repository.SessionRepositoryInterface
	exports  service.ExportServiceInterface
}

// NewPrintController creates a new PrintController
func NewPrintController(sessions repository.SessionRepositoryInterface, exports service.ExportServiceInterface) *PrintController {
	return &PrintController{
		sessions: sessions,
		exports:  exports,
	}
}

// Print handles GET /work-orders/{id}/print?format=html|pdf|xlsx|png
// The document is written only once it has been fully rendered.
func (c *PrintController) Print(w http.ResponseWriter, r *http.Request, id string) {
	log.Printf("📥 Print: Received %s request to %s", r.Method, r.URL.String())

	req := models.PrintRequest{Format: r.URL.Query().Get("format")}
	if req.Format == "" {
		req.Format = "html"
	}
	if err := validate.Struct(req); err != nil {
		log.Printf("❌ Print: Invalid format %q", req.Format)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid format: %s", req.Format))
		return
	}

	session, err := c.sessions.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, "Print", err)
		return
	}

	doc, err := c.exports.Render(r.Context(), session.State.Snapshot(), req.Format)
	if err != nil {
		log.Printf("❌ Print: Error rendering %s: %v", req.Format, err)
		writeError(w, http.StatusInternalServerError, "Failed to generate document")
		return
	}

	log.Printf("✅ Print: %s generated for %s (%d bytes)", req.Format, session.State.OrderNumber, len(doc.Data))

	w.Header().Set("Content-Type", doc.ContentType)
	if req.Format != "html" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		log.Printf("❌ Print: Error writing document: %v", err)
	}
}

// ExportDrive handles POST /work-orders/{id}/export/drive
func (c *PrintController) ExportDrive(w http.ResponseWriter, r *http.Request, id string) {
	log.Printf("📥 ExportDrive: Received %s request to %s", r.Method, r.URL.Path)

	session, err := c.sessions.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, "ExportDrive", err)
		return
	}

	link, err := c.exports.ExportToDrive(r.Context(), session.State.Snapshot())
	if err != nil {
		if errors.Is(err, service.ErrDriveDisabled) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		log.Printf("❌ ExportDrive: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to export work order")
		return
	}

	log.Printf("✅ ExportDrive: %s exported", session.State.OrderNumber)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "link": link})
}

// DriveExports handles GET /exports/drive
func (c *PrintController) DriveExports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "DriveExports", r.Method)
		return
	}

	names, err := c.exports.DriveExports(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrDriveDisabled) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		log.Printf("❌ DriveExports: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list exports")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// IssuedOrders handles GET /work-orders/issued?limit=N
func (c *PrintController) IssuedOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "IssuedOrders", r.Method)
		return
	}

	limit := defaultIssuedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	orders, err := c.exports.IssuedOrders(r.Context(), limit)
	if err != nil {
		log.Printf("❌ IssuedOrders: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list issued work orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
