package mapping

import (
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
	"github.com/warestock/warehouse_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		ProductID:       d.ProductID,
		Type:            models.TransactionType(d.Type),
		Quantity:        d.Quantity,
		Channel:         string(d.Channel),
		UnitCost:        d.UnitCost,
		TransactionDate: d.TransactionDate,
		Notes:           d.Notes,
		Reference:       d.Reference,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		ProductID:       m.ProductID,
		Type:            domain.TransactionType(m.Type),
		Quantity:        m.Quantity,
		Channel:         domain.Channel(m.Channel),
		UnitCost:        m.UnitCost,
		TransactionDate: m.TransactionDate,
		Notes:           m.Notes,
		Reference:       m.Reference,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
