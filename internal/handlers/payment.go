package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/services"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type PaymentHandler struct {
  paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
  return &PaymentHandler{paymentService: paymentService}
}

type processOrderRequest struct {
  OrderID string          `json:"order_id" binding:"required"`
  Plan    types.PlanLevel `json:"plan" binding:"required"`
}

func (ph *PaymentHandler) ProcessOrder(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req processOrderRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  user, err := ph.paymentService.ProcessOrder(c.Request.Context(), rd.UserID, req.OrderID, req.Plan)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"me": user})
}

func (ph *PaymentHandler) ListTransactions(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  txs, err := ph.paymentService.ListTransactions(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"transactions": txs})
}
