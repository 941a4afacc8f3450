package dto

// LowStockResponse lists products at or below their restock level,
// ordered by ascending stock in hand.
type LowStockResponse struct {
	Products []ProductResponse `json:"products"`
}
