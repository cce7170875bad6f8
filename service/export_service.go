package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"bodyshop-work-order/models"
	"bodyshop-work-order/repository"
)

var (
	// ErrUnsupportedFormat is returned for a format no renderer handles
	ErrUnsupportedFormat = errors.New("unsupported print format")
	// ErrDriveDisabled is returned when Drive export is not configured
	ErrDriveDisabled = errors.New("google drive export is not configured")
)

// Document is one rendered work order
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders work orders and hands the documents to their destinations
type ExportService struct {
	renderers map[string]Renderer
	archive   repository.ArchiveRepositoryInterface
	drive     DriveServiceInterface
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)

// NewExportService creates a new ExportService. drive may be nil.
func NewExportService(archive repository.ArchiveRepositoryInterface, drive DriveServiceInterface, renderers ...Renderer) *ExportService {
	byFormat := make(map[string]Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &ExportService{renderers: byFormat, archive: archive, drive: drive}
}

// Render produces the document for format. PDF and XLSX documents are
// issued documents and are recorded in the archive.
func (s *ExportService) Render(ctx context.Context, snap models.FormSnapshot, format string) (Document, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	log.Printf("🖨️  Rendering %s for %s", format, snap.OrderNumber)
	data, err := renderer.Render(ctx, snap)
	if err != nil {
		log.Printf("❌ Error rendering %s for %s: %v", format, snap.OrderNumber, err)
		return Document{}, fmt.Errorf("failed to render %s: %w", format, err)
	}

	if format == "pdf" || format == "xlsx" {
		s.recordIssued(ctx, snap, format)
	}

	return Document{
		Filename:    documentName(snap, format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// ExportToDrive renders the PDF and uploads it, returning the file link
func (s *ExportService) ExportToDrive(ctx context.Context, snap models.FormSnapshot) (string, error) {
	if s.drive == nil {
		return "", ErrDriveDisabled
	}

	doc, err := s.Render(ctx, snap, "pdf")
	if err != nil {
		return "", err
	}

	link, err := s.drive.UploadDocument(ctx, doc.Filename, doc.ContentType, doc.Data)
	if err != nil {
		log.Printf("❌ Error exporting %s to Drive: %v", doc.Filename, err)
		return "", err
	}
	return link, nil
}

// DriveExports lists the documents already exported to Drive
func (s *ExportService) DriveExports(ctx context.Context) ([]string, error) {
	if s.drive == nil {
		return nil, ErrDriveDisabled
	}
	return s.drive.ListDocuments(ctx)
}

// IssuedOrders returns the latest archive entries
func (s *ExportService) IssuedOrders(ctx context.Context, limit int) ([]models.IssuedWorkOrder, error) {
	return s.archive.ListRecent(ctx, limit)
}

// recordIssued logs the issued document. The document has already been
// produced, so an archive failure is only logged.
func (s *ExportService) recordIssued(ctx context.Context, snap models.FormSnapshot, format string) {
	if !s.archive.Enabled() {
		return
	}

	count := 0
	for _, item := range snap.Items {
		if !item.IsBlank() {
			count++
		}
	}
	entry := &models.IssuedWorkOrder{
		OrderNumber:  snap.OrderNumber,
		CustomerName: snap.Customer.Name,
		Vehicle:      strings.TrimSpace(snap.Vehicle.Year + " " + snap.Vehicle.MakeModel),
		Format:       format,
		ItemCount:    count,
	}
	if err := s.archive.Record(ctx, entry); err != nil {
		log.Printf("⚠️  Issued work order %s not archived: %v", snap.OrderNumber, err)
	}
}

func documentName(snap models.FormSnapshot, format string) string {
	name := snap.OrderNumber
	if name == "" {
		name = "work-order"
	}
	return fmt.Sprintf("%s.%s", name, format)
}
