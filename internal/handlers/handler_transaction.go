package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warestock/warehouse_ledger_app/internal/apperrors"
	portssvc "github.com/warestock/warehouse_ledger_app/internal/core/ports/services"
	"github.com/warestock/warehouse_ledger_app/internal/dto"
	"github.com/warestock/warehouse_ledger_app/internal/middleware"
)

// transactionHandler handles HTTP requests against the transaction ledger.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ls portssvc.LedgerSvcFacade) *transactionHandler {
	return &transactionHandler{
		ledgerService: ls,
	}
}

// registerTransactionRoutes registers routes related to the transaction ledger.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransactionHandler(ledgerService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.applyTransaction)
		transactions.GET("", h.listTransactions)
	}
}

// applyTransaction godoc
// @Summary Apply a stock transaction
// @Description Validates and applies an IN, OUT or ALLOCATE transaction, committing the ledger append and the snapshot update atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.ApplyTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, missing channel, or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Inactive product or unresolved write conflict"
// @Failure 422 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Commit outcome unknown, re-query before retrying"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) applyTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("product_id", req.ProductID), slog.String("type", req.Type))
	logger.Info("Received request to apply transaction", slog.Int64("quantity", req.Quantity))

	product, txn, err := h.ledgerService.ApplyTransaction(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Product not found for transaction")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrMissingChannel):
			logger.Warn("Validation error applying transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientStock):
			logger.Warn("Insufficient stock for transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInactive):
			logger.Warn("Transaction against inactive product")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Write conflict not resolved within retry budget", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Concurrent writes on this product, retry"})
		default:
			// The commit may or may not have landed. Callers must re-query
			// before retrying or they risk double-applying.
			logger.Error("Transaction commit outcome unknown", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Commit outcome unknown, re-query the product before retrying"})
		}
		return
	}

	logger.Info("Transaction applied successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ApplyTransactionResponse{
		Product:     dto.ToProductResponse(product),
		Transaction: dto.ToTransactionResponse(txn),
	})
}

// listTransactions godoc
// @Summary List ledger transactions
// @Description Retrieves a filtered, token-paginated slice of the ledger, newest first
// @Tags transactions
// @Produce  json
// @Param   productID query string false "Filter by product ID"
// @Param   from query string false "Inclusive lower bound on transaction date (RFC3339)"
// @Param   to query string false "Inclusive upper bound on transaction date (RFC3339)"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == 400 {
			logger.Warn("Bad pagination token for ListTransactions", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
