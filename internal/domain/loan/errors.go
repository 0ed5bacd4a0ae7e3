package loan

import "errors"

// Error kinds. Every sentinel below unwraps to exactly one kind, so callers can
// match either the precise condition or its family with errors.Is.
var (
	ErrKindLoanNotFound     = errors.New("loan not found")
	ErrKindNotAuthorized    = errors.New("not authorized")
	ErrKindIllegalStatus    = errors.New("illegal status")
	ErrKindInvalidAmount    = errors.New("invalid amount")
	ErrKindNotExpired       = errors.New("not expired")
	ErrKindAuctionUnsettled = errors.New("auction unsettled")
	ErrKindNotAParticipant  = errors.New("not a participant")
)

// Error is a registry failure carrying a stable wire code.
type Error struct {
	Code string
	Kind error
}

func (e *Error) Error() string { return e.Code }
func (e *Error) Unwrap() error { return e.Kind }

func newError(code string, kind error) *Error { return &Error{Code: code, Kind: kind} }

var (
	ErrLoanNotExists      = newError("LOAN_NOT_EXISTS", ErrKindLoanNotFound)
	ErrNotLoanAuthor      = newError("NOT_LOAN_AUTHOR", ErrKindNotAuthorized)
	ErrIllegalLoanStatus  = newError("ILLEGAL_LOAN_STATUS", ErrKindIllegalStatus)
	ErrLoanNotFunded      = newError("LOAN_NOT_FUNDED", ErrKindIllegalStatus)
	ErrLoanHasLenders     = newError("LOAN_HAS_LENDERS", ErrKindIllegalStatus)
	ErrZeroAmount         = newError("ZERO_AMOUNT", ErrKindInvalidAmount)
	ErrSameAmount         = newError("SAME_AMOUNT", ErrKindInvalidAmount)
	ErrExceedsLoanAmount  = newError("EXCEEDS_LOAN_AMOUNT", ErrKindInvalidAmount)
	ErrFractionalAmount   = newError("FRACTIONAL_AMOUNT", ErrKindInvalidAmount)
	ErrInvalidPeriod      = newError("INVALID_PERIOD", ErrKindInvalidAmount)
	ErrLoanNotExpired     = newError("LOAN_NOT_EXPIRED", ErrKindNotExpired)
	ErrAuctionNotFinished = newError("AUCTION_NOT_FINISHED", ErrKindAuctionUnsettled)
	ErrNotLoanLender      = newError("NOT_LOAN_LENDER", ErrKindNotAParticipant)
)

// Code returns the wire code of a registry error, or "" for anything else.
func Code(err error) string {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
