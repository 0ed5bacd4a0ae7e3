package http

import (
	"errors"
	"net/http"

	"nft-lending-backend/internal/domain/asset"
	"nft-lending-backend/internal/domain/auction"
	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/domain/loan"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errMapping struct {
	err    error
	status int
	code   string
}

// collaborator failures, first match wins
var collaboratorErrors = []errMapping{
	{asset.ErrInsufficientBalance, http.StatusPaymentRequired, "INSUFFICIENT_BALANCE"},
	{asset.ErrInsufficientAllowance, http.StatusPaymentRequired, "INSUFFICIENT_ALLOWANCE"},
	{asset.ErrNegativeAmount, http.StatusUnprocessableEntity, "NEGATIVE_AMOUNT"},
	{asset.ErrZeroAddress, http.StatusUnprocessableEntity, "ZERO_ADDRESS"},
	{collateral.ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
	{collateral.ErrNotOwnerNorApproved, http.StatusForbidden, "NOT_OWNER_NOR_APPROVED"},
	{collateral.ErrWrongOwner, http.StatusConflict, "WRONG_ITEM_OWNER"},
	{collateral.ErrApproveToOwner, http.StatusUnprocessableEntity, "APPROVE_TO_OWNER"},
	{collateral.ErrZeroAddress, http.StatusUnprocessableEntity, "ZERO_ADDRESS"},
	{auction.ErrAuctionNotFound, http.StatusNotFound, "AUCTION_NOT_FOUND"},
	{auction.ErrAuctionClosed, http.StatusConflict, "AUCTION_ALREADY_FINISHED"},
	{auction.ErrZeroPrice, http.StatusUnprocessableEntity, "AUCTION_ZERO_PRICE"},
	{auction.ErrNotItemHolder, http.StatusConflict, "AUCTION_NOT_ITEM_HOLDER"},
}

// statusFor maps an operation error to its HTTP status and wire code.
// Unknown errors are 500 with a generic code.
func statusFor(err error) (int, string) {
	if code := loan.Code(err); code != "" {
		switch {
		case errors.Is(err, loan.ErrKindLoanNotFound):
			return http.StatusNotFound, code
		case errors.Is(err, loan.ErrKindNotAuthorized), errors.Is(err, loan.ErrKindNotAParticipant):
			return http.StatusForbidden, code
		case errors.Is(err, loan.ErrKindInvalidAmount):
			return http.StatusUnprocessableEntity, code
		default:
			// illegal status, not expired, auction unsettled
			return http.StatusConflict, code
		}
	}
	for _, m := range collaboratorErrors {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

func writeError(c echo.Context, log *zap.Logger, err error) error {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method), zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(status, ErrorResponse{Error: code})
	}
	return c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "BAD_REQUEST", Message: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "VALIDATION_FAILED",
		Details: ToFieldErrors(err),
	})
}
