package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/dto"
	"github.com/saralbooks/bank_recon_app/internal/middleware"
)

// transactionHandler handles HTTP requests for the reconciliation surface.
type transactionHandler struct {
	reconService      portssvc.ReconSvcFacade
	suggestionService portssvc.SuggestionSvcFacade
}

func newTransactionHandler(recon portssvc.ReconSvcFacade, suggestion portssvc.SuggestionSvcFacade) *transactionHandler {
	return &transactionHandler{
		reconService:      recon,
		suggestionService: suggestion,
	}
}

// registerTransactionRoutes registers the transaction routes. The import
// route carries the rate limiter because batch ingestion is the heaviest
// endpoint.
func registerTransactionRoutes(rg *gin.RouterGroup, recon portssvc.ReconSvcFacade, suggestion portssvc.SuggestionSvcFacade, importLimiter gin.HandlerFunc) {
	h := newTransactionHandler(recon, suggestion)

	txns := rg.Group("/transactions")
	{
		txns.POST("/import", importLimiter, h.importBatch)
		txns.GET("", h.listTransactions)
		txns.GET("/:txnID", h.getTransaction)
		txns.GET("/:txnID/suggestions", h.getSuggestions)
		txns.POST("/:txnID/confirm", h.confirmTransaction)
		txns.POST("/:txnID/cancel", h.cancelTransaction)
		txns.POST("/:txnID/hold", h.setHold)
		txns.POST("/:txnID/self-transfer", h.setSelfTransfer)
		txns.PATCH("/:txnID", h.updateTransaction)
		txns.POST("/:txnID/edit-session", h.editSession)
	}
}

func (h *transactionHandler) importBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IngestBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for import", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.reconService.IngestBatch(c.Request.Context(), req.Records)
	if err != nil {
		respondError(c, err, "Failed to import transactions")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"received": len(req.Records),
		"created":  len(created),
		"skipped":  len(req.Records) - len(created),
		"records":  dto.ToTransactionResponses(created),
	})
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	txns, err := h.reconService.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.reconService.GetTransaction(c.Request.Context(), c.Param("txnID"))
	if err != nil {
		respondError(c, err, "Failed to fetch transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) getSuggestions(c *gin.Context) {
	txnID := c.Param("txnID")
	txn, err := h.reconService.GetTransaction(c.Request.Context(), txnID)
	if err != nil {
		respondError(c, err, "Failed to fetch transaction")
		return
	}

	suggestions, err := h.suggestionService.SuggestForTransaction(c.Request.Context(), *txn)
	if err != nil {
		respondError(c, err, "Failed to compute suggestions")
		return
	}
	c.JSON(http.StatusOK, dto.SuggestionsResponse{
		TransactionID: txnID,
		Suggestions:   suggestions,
	})
}

func (h *transactionHandler) confirmTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConfirmTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for confirm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.reconService.Confirm(c.Request.Context(), c.Param("txnID"), req.ExternalReference)
	if err != nil {
		respondError(c, err, "Failed to confirm transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	txn, err := h.reconService.Cancel(c.Request.Context(), c.Param("txnID"))
	if err != nil {
		respondError(c, err, "Failed to cancel confirmation")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) setHold(c *gin.Context) {
	var req dto.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.reconService.SetHold(c.Request.Context(), c.Param("txnID"), *req.Hold)
	if err != nil {
		respondError(c, err, "Failed to update hold flag")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) setSelfTransfer(c *gin.Context) {
	var req dto.SelfTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.reconService.SetSelfTransfer(c.Request.Context(), c.Param("txnID"), *req.SelfTransfer)
	if err != nil {
		respondError(c, err, "Failed to update self-transfer flag")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction edits party name and/or external reference. A
// debounced reference edit is buffered and flushed after the quiet
// period; the response then reflects the pre-flush stored state.
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.PartyName == nil && req.ExternalReference == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	txnID := c.Param("txnID")
	txn, err := h.reconService.GetTransaction(c.Request.Context(), txnID)
	if err != nil {
		respondError(c, err, "Failed to fetch transaction")
		return
	}

	if req.PartyName != nil {
		txn, err = h.reconService.UpdatePartyName(c.Request.Context(), txnID, *req.PartyName)
		if err != nil {
			respondError(c, err, "Failed to update party name")
			return
		}
	}

	if req.ExternalReference != nil {
		if req.DebounceReference {
			h.reconService.QueueExternalReference(txnID, *req.ExternalReference)
			c.JSON(http.StatusAccepted, dto.ToTransactionResponse(txn))
			return
		}
		txn, err = h.reconService.UpdateExternalReference(c.Request.Context(), txnID, *req.ExternalReference)
		if err != nil {
			respondError(c, err, "Failed to update external reference")
			return
		}
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) editSession(c *gin.Context) {
	var req dto.EditSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txnID := c.Param("txnID")
	if *req.Open {
		h.reconService.BeginEdit(txnID)
	} else {
		h.reconService.EndEdit(txnID)
	}
	c.JSON(http.StatusOK, gin.H{"transactionID": txnID, "editing": *req.Open})
}
