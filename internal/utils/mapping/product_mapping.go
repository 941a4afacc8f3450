package mapping

import (
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	"github.com/warestock/warehouse_ledger_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:        d.ProductID,
		Code:             d.Code,
		SKU:              d.SKU,
		Image:            d.Image,
		CategoryName:     d.CategoryName,
		Vendor:           d.Vendor,
		Status:           models.ProductStatus(d.Status),
		LastPurchaseCost: d.LastPurchaseCost,
		StockInHand:      d.StockInHand,
		RestockLevel:     d.RestockLevel,
		KevinQuantity:    d.KevinQuantity,
		JayeshQuantity:   d.JayeshQuantity,
		RetailQuantity:   d.RetailQuantity,
		IsActive:         d.IsActive,
		Version:          d.Version,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:        m.ProductID,
		Code:             m.Code,
		SKU:              m.SKU,
		Image:            m.Image,
		CategoryName:     m.CategoryName,
		Vendor:           m.Vendor,
		Status:           domain.ProductStatus(m.Status),
		LastPurchaseCost: m.LastPurchaseCost,
		StockSnapshot: domain.StockSnapshot{
			StockInHand:    m.StockInHand,
			RestockLevel:   m.RestockLevel,
			KevinQuantity:  m.KevinQuantity,
			JayeshQuantity: m.JayeshQuantity,
			RetailQuantity: m.RetailQuantity,
		},
		IsActive:    m.IsActive,
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products.
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	out := make([]domain.Product, len(ms))
	for i, m := range ms {
		out[i] = ToDomainProduct(m)
	}
	return out
}
