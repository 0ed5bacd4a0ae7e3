package http

import (
	"net/http"

	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/usecase/sandbox"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SandboxHandler exposes the reference custody stores. Mounted only when
// SANDBOX_ENABLED is set.
type SandboxHandler struct {
	uc  *sandbox.Usecase
	log *zap.Logger
}

func NewSandboxHandler(uc *sandbox.Usecase, log *zap.Logger) *SandboxHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SandboxHandler{uc: uc, log: log}
}

type mintAssetsReq struct {
	To     string `json:"to"     validate:"required,ethaddr"`
	Amount string `json:"amount" validate:"required,uintstr"`
}

type approveAssetsReq struct {
	Spender string `json:"spender" validate:"required,ethaddr"`
	Amount  string `json:"amount"  validate:"required,uintstr"`
}

type mintItemReq struct {
	Registry string `json:"registry" validate:"required,ethaddr"`
	To       string `json:"to"       validate:"required,ethaddr"`
	URI      string `json:"uri"`
}

type approveItemReq struct {
	Registry string `json:"registry" validate:"required,ethaddr"`
	ItemID   uint64 `json:"item_id"  validate:"required"`
	Operator string `json:"operator" validate:"required,ethaddr"`
}

type finishAuctionReq struct {
	Price string `json:"price" validate:"required,uintstr"`
}

func (h *SandboxHandler) MintAssets(c echo.Context) error {
	var req mintAssetsReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.MintAssets(c.Request().Context(), common.HexToAddress(req.To), amount(req.Amount))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ApproveAssets sets the caller's allowance to spender.
func (h *SandboxHandler) ApproveAssets(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req approveAssetsReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	spender := common.HexToAddress(req.Spender)
	if err := h.uc.ApproveAssets(c.Request().Context(), owner, spender, amount(req.Amount)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"owner":   owner.Hex(),
		"spender": spender.Hex(),
		"amount":  amount(req.Amount),
	})
}

func (h *SandboxHandler) Balance(c echo.Context) error {
	who, err := addressParam(c, "address")
	if err != nil {
		return badRequest(c, err.Error())
	}
	dto, err := h.uc.Balance(c.Request().Context(), who)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SandboxHandler) MintItem(c echo.Context) error {
	var req mintItemReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.MintItem(c.Request().Context(), common.HexToAddress(req.Registry), common.HexToAddress(req.To), req.URI)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ApproveItem lets operator move one of the caller's items.
func (h *SandboxHandler) ApproveItem(c echo.Context) error {
	owner, err := caller(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req approveItemReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ref := collateral.Ref{Registry: common.HexToAddress(req.Registry), ItemID: req.ItemID}
	if err := h.uc.ApproveItem(c.Request().Context(), owner, common.HexToAddress(req.Operator), ref); err != nil {
		return writeError(c, h.log, err)
	}
	dto, err := h.uc.Item(c.Request().Context(), ref)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SandboxHandler) Item(c echo.Context) error {
	registry, err := addressParam(c, "registry")
	if err != nil {
		return badRequest(c, err.Error())
	}
	itemID, err := uintParam(c, "item_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	dto, err := h.uc.Item(c.Request().Context(), collateral.Ref{Registry: registry, ItemID: itemID})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// FinishAuction settles the auction with the caller as winner.
func (h *SandboxHandler) FinishAuction(c echo.Context) error {
	id, err := uintParam(c, "auction_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	winner, err := caller(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req finishAuctionReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := h.uc.FinishAuction(c.Request().Context(), id, winner, amount(req.Price)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"auction_id": id,
		"winner":     winner.Hex(),
		"price":      amount(req.Price),
	})
}
