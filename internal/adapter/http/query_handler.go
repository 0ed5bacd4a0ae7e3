package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := loanIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	dto, err := h.uc.GetLoan(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoanStatus(c echo.Context) error {
	id, err := loanIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	s, err := h.uc.GetLoanStatus(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"loan_id":     id,
		"status":      s,
		"status_code": s.Index(),
	})
}

func (h *LoanHandler) GetLoanLenders(c echo.Context) error {
	id, err := loanIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	lenders, err := h.uc.GetLoanLenders(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": id, "lenders": lenders})
}

func (h *LoanHandler) GetLoanLenderAmount(c echo.Context) error {
	id, err := loanIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	lender, err := addressParam(c, "lender")
	if err != nil {
		return badRequest(c, err.Error())
	}
	amt, err := h.uc.GetLoanLenderAmount(c.Request().Context(), id, lender)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": id, "lender": lender.Hex(), "principal": amt})
}

func (h *LoanHandler) ListLoanEvents(c echo.Context) error {
	id, err := loanIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	events, err := h.uc.ListLoanEvents(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": id, "events": events})
}

// CalcInterest: GET /interest?principal=...&annual_rate=...
func (h *LoanHandler) CalcInterest(c echo.Context) error {
	principal, err := decimal.NewFromString(c.QueryParam("principal"))
	if err != nil || principal.IsNegative() || !principal.IsInteger() {
		return badRequest(c, "principal must be a non-negative integer")
	}
	rate, err := strconv.ParseUint(c.QueryParam("annual_rate"), 10, 32)
	if err != nil {
		return badRequest(c, "annual_rate must be an unsigned 32-bit integer")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"principal":            principal,
		"annual_rate":          rate,
		"amount_with_interest": h.uc.CalcAmountWithInterest(principal, uint32(rate)),
	})
}
