package services

import (
	"context"

	"github.com/warestock/warehouse_ledger_app/internal/dto"
)

// ReportingSvcFacade provides read-only stock projections.
type ReportingSvcFacade interface {
	// ListLowStock returns products whose stock in hand is at or below their
	// restock level, ordered by ascending stock in hand.
	ListLowStock(ctx context.Context) (*dto.LowStockResponse, error)
}
