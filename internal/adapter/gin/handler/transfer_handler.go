package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-balance-service/internal/usecase/ledger"
)

// TransferHandler handles HTTP requests for fund transfers
type TransferHandler struct {
	uc  ledger.Usecase
	log *zap.Logger
}

// NewTransferHandler creates a new TransferHandler instance
func NewTransferHandler(uc ledger.Usecase, log *zap.Logger) *TransferHandler {
	useJSONFieldNames()
	return &TransferHandler{
		uc:  uc,
		log: log,
	}
}

// TransferRequest represents the HTTP request body for a transfer.
// Pointers distinguish a missing field from an explicit zero, which must
// reach the ledger so that it can report a non-positive amount.
type TransferRequest struct {
	FromUserID *int64   `json:"from_user_id" binding:"required"`
	ToUserID   *int64   `json:"to_user_id" binding:"required"`
	Amount     *float64 `json:"amount" binding:"required"`
}

// TransferResponse represents the HTTP response for a successful transfer
type TransferResponse struct {
	Message string `json:"message"`
}

// Transfer handles POST /transfer
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	resp, err := h.uc.Transfer(c.Request.Context(), ledger.TransferRequest{
		FromUserID: *req.FromUserID,
		ToUserID:   *req.ToUserID,
		Amount:     *req.Amount,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, TransferResponse{Message: resp.Message})
}
