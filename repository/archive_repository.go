package repository

import (
	"context"
	"fmt"
	"log"

	"bodyshop-work-order/db"
	"bodyshop-work-order/models"
)

// ArchiveRepository records issued work orders in PostgreSQL.
// Without a configured database every call is a no-op.
type ArchiveRepository struct{}

// NewArchiveRepository creates a new ArchiveRepository
func NewArchiveRepository() *ArchiveRepository {
	return &ArchiveRepository{}
}

// Ensure ArchiveRepository implements ArchiveRepositoryInterface
var _ ArchiveRepositoryInterface = (*ArchiveRepository)(nil)

// Enabled reports whether a database is available
func (r *ArchiveRepository) Enabled() bool {
	return db.DB != nil
}

// Record inserts one issued work order and fills in its id and issue time
func (r *ArchiveRepository) Record(ctx context.Context, entry *models.IssuedWorkOrder) error {
	if db.DB == nil {
		return nil
	}

	query := `
		INSERT INTO issued_work_orders (order_number, customer_name, vehicle, format, item_count, issued_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, issued_at
	`
	err := db.DB.QueryRowContext(ctx, query,
		entry.OrderNumber,
		entry.CustomerName,
		entry.Vehicle,
		entry.Format,
		entry.ItemCount,
	).Scan(&entry.ID, &entry.IssuedAt)
	if err != nil {
		log.Printf("❌ Error recording issued work order %s: %v", entry.OrderNumber, err)
		return fmt.Errorf("failed to record issued work order: %w", err)
	}

	log.Printf("✓ Issued work order recorded: id=%d, order=%s, format=%s", entry.ID, entry.OrderNumber, entry.Format)
	return nil
}

// ListRecent returns the latest issued work orders, newest first
func (r *ArchiveRepository) ListRecent(ctx context.Context, limit int) ([]models.IssuedWorkOrder, error) {
	if db.DB == nil {
		return []models.IssuedWorkOrder{}, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `
		SELECT id, order_number, customer_name, vehicle, format, item_count, issued_at
		FROM issued_work_orders
		ORDER BY issued_at DESC, id DESC
		LIMIT $1
	`
	rows, err := db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		log.Printf("❌ Error listing issued work orders: %v", err)
		return nil, fmt.Errorf("failed to list issued work orders: %w", err)
	}
	defer rows.Close()

	orders := []models.IssuedWorkOrder{}
	for rows.Next() {
		var o models.IssuedWorkOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Vehicle, &o.Format, &o.ItemCount, &o.IssuedAt); err != nil {
			log.Printf("❌ Error scanning issued work order: %v", err)
			continue
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate issued work orders: %w", err)
	}
	return orders, nil
}
