package http

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

func (h *LoanHandler) ClaimAuction(c echo.Context) error {
	return h.loanAction(c, func(id uint64, who common.Address) (any, error) {
		return h.uc.ClaimAuction(c.Request().Context(), id, who)
	})
}

func (h *LoanHandler) ClaimLoanedReturns(c echo.Context) error {
	return h.loanAction(c, func(id uint64, who common.Address) (any, error) {
		return h.uc.ClaimLoanedReturns(c.Request().Context(), id, who)
	})
}
