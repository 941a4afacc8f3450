package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
)

// CreateProductRequest is the inbound payload for registering a product.
// Stock fields are deliberately absent: every product starts at zero and is
// only moved by transactions.
type CreateProductRequest struct {
	Code         string `json:"code" binding:"required"`
	SKU          string `json:"sku" binding:"required"`
	Image        string `json:"image"`
	CategoryName string `json:"categoryName" binding:"required"`
	Vendor       string `json:"vendor" binding:"required"`
	Status       string `json:"status" binding:"omitempty,productstatus"`
	RestockLevel *int64 `json:"restockLevel" binding:"required,gte=0"`
}

// UpdateProductRequest carries the editable non-stock fields. Nil means
// "leave unchanged"; code and stock fields are immutable through this path.
type UpdateProductRequest struct {
	SKU          *string `json:"sku"`
	Image        *string `json:"image"`
	CategoryName *string `json:"categoryName"`
	Vendor       *string `json:"vendor"`
	Status       *string `json:"status" binding:"omitempty,productstatus"`
	RestockLevel *int64  `json:"restockLevel" binding:"omitempty,gte=0"`
}

// ListProductsParams narrows and paginates product listings.
type ListProductsParams struct {
	Status    string  `form:"status" binding:"omitempty,productstatus"`
	Vendor    string  `form:"vendor"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ProductResponse is the outbound product representation.
type ProductResponse struct {
	ProductID        string          `json:"productID"`
	Code             string          `json:"code"`
	SKU              string          `json:"sku"`
	Image            string          `json:"image,omitempty"`
	CategoryName     string          `json:"categoryName"`
	Vendor           string          `json:"vendor"`
	Status           string          `json:"status"`
	StockInHand      int64           `json:"stockInHand"`
	RestockLevel     int64           `json:"restockLevel"`
	KevinQuantity    int64           `json:"kevinQuantity"`
	JayeshQuantity   int64           `json:"jayeshQuantity"`
	RetailQuantity   int64           `json:"retailQuantity"`
	Unallocated      int64           `json:"unallocated"`
	LastPurchaseCost decimal.Decimal `json:"lastPurchaseCost"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	UpdatedBy        string          `json:"updatedBy"`
}

// ListProductsResponse is a page of products plus the token for the next page.
type ListProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToProductResponse converts a domain product to its API representation.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:        p.ProductID,
		Code:             p.Code,
		SKU:              p.SKU,
		Image:            p.Image,
		CategoryName:     p.CategoryName,
		Vendor:           p.Vendor,
		Status:           string(p.Status),
		StockInHand:      p.StockInHand,
		RestockLevel:     p.RestockLevel,
		KevinQuantity:    p.KevinQuantity,
		JayeshQuantity:   p.JayeshQuantity,
		RetailQuantity:   p.RetailQuantity,
		Unallocated:      p.Unallocated(),
		LastPurchaseCost: p.LastPurchaseCost,
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
		UpdatedAt:        p.UpdatedAt,
		UpdatedBy:        p.UpdatedBy,
	}
}

// ToProductResponses converts a slice of domain products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
