package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"bodyshop-work-order/models"
)

// DocumentAnalyzer posts estimate files to the analysis endpoint
type DocumentAnalyzer struct {
	baseURL string
	client  *http.Client
}

// Ensure DocumentAnalyzer implements DocumentAnalyzerInterface
var _ DocumentAnalyzerInterface = (*DocumentAnalyzer)(nil)

// NewDocumentAnalyzer creates a client for <baseURL>/analyze
func NewDocumentAnalyzer(baseURL string, client *http.Client) *DocumentAnalyzer {
	if client == nil {
		client = http.DefaultClient
	}
	return &DocumentAnalyzer{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Analyze uploads the file as the multipart field "file" and decodes the JSON answer
func (a *DocumentAnalyzer) Analyze(ctx context.Context, filename string, file io.Reader) (models.AnalysisResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/analyze", &body)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	log.Printf("📤 Sending %s for analysis (%d bytes)", filename, body.Len())
	resp, err := a.client.Do(req)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to call analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.AnalysisResult{}, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to decode analysis: %w", err)
	}
	log.Printf("✓ Analysis of %s returned %d items", filename, len(result.Items))
	return result, nil
}
