package http

import (
	"net/http"

	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/usecase/loan"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log *zap.Logger
}

func NewLoanHandler(uc *loan.Usecase, log *zap.Logger) *LoanHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoanHandler{uc: uc, log: log}
}

type createLoanReq struct {
	Registry   string `json:"collateral_registry" validate:"required,ethaddr"`
	ItemID     uint64 `json:"collateral_item_id"  validate:"required"`
	Principal  string `json:"principal"           validate:"required,uintstr"`
	AnnualRate uint32 `json:"annual_rate"`
	MaxPeriod  int64  `json:"max_period"          validate:"gte=0,lte=9223372036"`
}

// CreateLoan proposes a loan for the caller, who must own the collateral.
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	borrower, err := caller(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req createLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateLoanProposal(c.Request().Context(), loan.CreateLoanProposalInput{
		Borrower: borrower,
		Collateral: collateral.Ref{
			Registry: common.HexToAddress(req.Registry),
			ItemID:   req.ItemID,
		},
		Principal:  amount(req.Principal),
		AnnualRate: req.AnnualRate,
		MaxPeriod:  req.MaxPeriod,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// loanAction runs op for the loan in the path on behalf of the caller.
func (h *LoanHandler) loanAction(c echo.Context, op func(id uint64, who common.Address) (any, error)) error {
	id, err := loanIDParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	who, err := caller(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	out, err := op(id, who)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) CancelLoan(c echo.Context) error {
	return h.loanAction(c, func(id uint64, who common.Address) (any, error) {
		return h.uc.CancelLoanProposal(c.Request().Context(), id, who)
	})
}

func (h *LoanHandler) ClaimLoanedTokens(c echo.Context) error {
	return h.loanAction(c, func(id uint64, who common.Address) (any, error) {
		return h.uc.ClaimLoanedTokens(c.Request().Context(), id, who)
	})
}

func (h *LoanHandler) ReturnLoan(c echo.Context) error {
	return h.loanAction(c, func(id uint64, who common.Address) (any, error) {
		return h.uc.ReturnLoan(c.Request().Context(), id, who)
	})
}

func (h *LoanHandler) LiquidateCollateral(c echo.Context) error {
	return h.loanAction(c, func(id uint64, who common.Address) (any, error) {
		return h.uc.LiquidateCollateral(c.Request().Context(), id, who)
	})
}
