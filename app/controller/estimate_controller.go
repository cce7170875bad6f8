package controller

import (
	"io"
	"log"
	"net/http"

	"bodyshop-work-order/estimate"
)

// EstimateController serves the estimate analysis backend
type EstimateController struct{}

// NewEstimateController creates a new EstimateController
func NewEstimateController() *EstimateController {
	return &EstimateController{}
}

// Analyze handles POST /analyze
// Reads the uploaded estimate from the "file" field and returns the extracted fields
func (c *EstimateController) Analyze(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Analyze: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Analyze", r.Method)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Printf("❌ Analyze: Failed to parse form: %v", err)
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("❌ Analyze: No file uploaded: %v", err)
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ Analyze: Failed to read %s: %v", header.Filename, err)
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	result, err := estimate.FromDocument(data)
	if err != nil {
		log.Printf("❌ Analyze: Extraction failed for %s: %v", header.Filename, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("✅ Analyze: %s -> VIN=%s, Plate=%s, %d items", header.Filename, result.Vehicle.VIN, result.Vehicle.Plate, len(result.Items))
	writeJSON(w, http.StatusOK, result)
}

// Health handles GET /health
func (c *EstimateController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
