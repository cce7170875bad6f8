package controller

import (
	"log"
	"net/http"
	"time"

	"bodyshop-work-order/models"
	"bodyshop-work-order/service"
)

// maxUploadSize bounds estimate uploads kept in memory
const maxUploadSize = 20 << 20

// EnrichmentController handles VIN entry and estimate uploads
type EnrichmentController struct {
	enrichment service.EnrichmentServiceInterface
	now        func() time.Time
}

// NewEnrichmentController creates a new EnrichmentController
func NewEnrichmentController(enrichment service.EnrichmentServiceInterface) *EnrichmentController {
	return &EnrichmentController{
		enrichment: enrichment,
		now:        time.Now,
	}
}

// SetVIN handles POST /work-orders/{id}/vin
// Stores the VIN and decodes it once it is 17 characters long.
// A failed decode clears the vehicle details and is not an HTTP error.
func (c *EnrichmentController) SetVIN(w http.ResponseWriter, r *http.Request, id string) {
	log.Printf("📥 SetVIN: Received %s request to %s", r.Method, r.URL.Path)

	var req models.DecodeVinRequest
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ SetVIN: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := c.enrichment.SetVIN(r.Context(), id, req.VIN)
	if err != nil {
		writeSessionError(w, "SetVIN", err)
		return
	}
	writeJSON(w, http.StatusOK, newWorkOrderResponse(session, c.now()))
}

// AnalyzeDocument handles POST /work-orders/{id}/analyze
// Expects a multipart form with the estimate in the "file" field
func (c *EnrichmentController) AnalyzeDocument(w http.ResponseWriter, r *http.Request, id string) {
	log.Printf("📥 AnalyzeDocument: Received %s request to %s", r.Method, r.URL.Path)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("❌ AnalyzeDocument: Failed to parse form: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("❌ AnalyzeDocument: No file uploaded: %v", err)
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	log.Printf("📋 AnalyzeDocument: session=%s, file=%s, size=%d", id, header.Filename, header.Size)

	session, err := c.enrichment.AnalyzeDocument(r.Context(), id, header.Filename, file)
	if err != nil {
		writeSessionError(w, "AnalyzeDocument", err)
		return
	}

	log.Printf("✅ AnalyzeDocument: session=%s, status=%s", id, session.State.UploadStatus)
	writeJSON(w, http.StatusOK, newWorkOrderResponse(session, c.now()))
}
