package service

import (
	"context"

	"bodyshop-work-order/models"
)

// ExportServiceInterface defines the contract for printing and exporting work orders
type ExportServiceInterface interface {
	Render(ctx context.Context, snap models.FormSnapshot, format string) (Document, error)
	ExportToDrive(ctx context.Context, snap models.FormSnapshot) (string, error)
	DriveExports(ctx context.Context) ([]string, error)
	IssuedOrders(ctx context.Context, limit int) ([]models.IssuedWorkOrder, error)
}
