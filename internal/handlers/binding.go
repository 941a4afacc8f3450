package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/warestock/warehouse_ledger_app/internal/core/domain"
)

// RegisterCustomValidators wires domain enum checks into gin's binding
// validator so malformed statuses, transaction types and channels are
// rejected at bind time, before a request reaches the services.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("productstatus", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseProductStatus(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("transactiontype", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTransactionType(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("stockchannel", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseChannel(fl.Field().String())
		return err == nil
	})
}
