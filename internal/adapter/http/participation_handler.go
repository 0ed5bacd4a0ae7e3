package http

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

type participationReq struct {
	Amount string `json:"amount" validate:"required,uintstr"`
}

// UpdateParticipation sets the caller's commitment to amount.
func (h *LoanHandler) UpdateParticipation(c echo.Context) error {
	id, err := loanIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	lender, err := caller(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req participationReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateProposalParticipation(c.Request().Context(), id, lender, amount(req.Amount))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) CancelParticipation(c echo.Context) error {
	return h.loanAction(c, func(id uint64, who common.Address) (any, error) {
		return h.uc.CancelProposalParticipation(c.Request().Context(), id, who)
	})
}
