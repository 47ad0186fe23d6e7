package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/loanledger/internal/domain/errors"
	"github.com/polkiloo/loanledger/internal/server/http/dto"
)

// LoanHandler manages loan endpoints.
type LoanHandler struct {
	facade LoanFacade
}

// NewLoanHandler constructs LoanHandler.
func NewLoanHandler(facade LoanFacade) *LoanHandler {
	return &LoanHandler{facade: facade}
}

// List handles GET /loan.
func (h *LoanHandler) List(c *gin.Context) {
	loans, err := h.facade.Loans(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		resp = append(resp, dto.NewLoanResponse(l))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /loan.
func (h *LoanHandler) Create(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		writeError(c, domainErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Amount == nil || req.Terms == nil {
		badRequest(c, "amount and terms are required")
		return
	}

	loan, err := h.facade.CreateLoan(c.Request.Context(), identity, *req.Amount, *req.Terms)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateLoanResponse{ID: loan.ID})
}

// Approve handles PUT /approval/{loan_id}.
func (h *LoanHandler) Approve(c *gin.Context) {
	loanID, ok := pathID(c, "loan_id", "Loan")
	if !ok {
		return
	}
	if err := h.facade.ApproveLoan(c.Request.Context(), CurrentIdentity(c), loanID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Loan, with ID %d is approved.", loanID)})
}
