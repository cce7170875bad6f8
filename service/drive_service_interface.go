package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	UploadDocument(ctx context.Context, name, mimeType string, data []byte) (string, error)
	ListDocuments(ctx context.Context) ([]string, error)
}
