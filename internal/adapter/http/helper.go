package http

import (
	"fmt"
	"strconv"

	"nft-lending-backend/internal/adapter/middleware"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ---- helpers ----

func loanIDParam(c echo.Context) (uint64, error) {
	return uintParam(c, "loan_id")
}

func uintParam(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s path param", name)
	}
	return id, nil
}

func addressParam(c echo.Context, name string) (common.Address, error) {
	raw := c.Param(name)
	if len(raw) < 2 || raw[:2] != "0x" || !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid %s path param", name)
	}
	return common.HexToAddress(raw), nil
}

// caller is the account a request acts for.
func caller(c echo.Context) (common.Address, error) {
	return middleware.CallerFrom(c)
}

// amount parses a field already checked by the uintstr tag.
func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// bindValid binds the body into req and runs the validator.
// It writes the 400/422 response itself and reports whether to continue.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}
