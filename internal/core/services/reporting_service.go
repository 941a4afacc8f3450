package services

import (
	"context"
	"fmt"

	portsrepo "github.com/warestock/warehouse_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
)

// reportingService provides the read-only stock projections. No locks, no
// side effects; it always reads last-committed rows.
type reportingService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{productRepo: productRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ListLowStock returns active products with stock in hand at or below their
// restock level, ordered by ascending stock in hand.
func (s *reportingService) ListLowStock(ctx context.Context) (*dto.LowStockResponse, error) {
	products, err := s.productRepo.ListLowStockProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return &dto.LowStockResponse{Products: dto.ToProductResponses(products)}, nil
}
