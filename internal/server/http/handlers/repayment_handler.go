package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/server/http/dto"
)

const (
	repaymentCompleted = "Repayment successfully completed."
	repaymentSettled   = "Repayment was already completed."
)

// RepaymentHandler records installment payments.
type RepaymentHandler struct {
	facade RepaymentFacade
}

// NewRepaymentHandler constructs RepaymentHandler.
func NewRepaymentHandler(facade RepaymentFacade) *RepaymentHandler {
	return &RepaymentHandler{facade: facade}
}

// Repay handles PUT /repayment/{loan_id}/{repayment_id}.
func (h *RepaymentHandler) Repay(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		writeError(c, domainErrors.ErrUnauthorized)
		return
	}
	loanID, ok := pathID(c, "loan_id", "Loan")
	if !ok {
		return
	}
	repaymentID, ok := pathID(c, "repayment_id", "Repayment")
	if !ok {
		return
	}

	var req dto.RepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.facade.Repay(c.Request.Context(), identity, loanID, repaymentID, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	msg := repaymentCompleted
	if result.AlreadyPaid {
		msg = repaymentSettled
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}
