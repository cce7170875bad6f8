package service

import (
	"context"
	"io"

	"bodyshop-work-order/models"
	"bodyshop-work-order/repository"
)

// VinDecoderInterface defines the contract for the vehicle decode client
type VinDecoderInterface interface {
	Decode(ctx context.Context, vin string) (models.DecodedVehicle, error)
}

// DocumentAnalyzerInterface defines the contract for the document analysis client
type DocumentAnalyzerInterface interface {
	Analyze(ctx context.Context, filename string, file io.Reader) (models.AnalysisResult, error)
}

// EnrichmentServiceInterface applies external enrichment to a session
type EnrichmentServiceInterface interface {
	SetVIN(ctx context.Context, sessionID, vin string) (repository.Session, error)
	AnalyzeDocument(ctx context.Context, sessionID, filename string, file io.Reader) (repository.Session, error)
}
