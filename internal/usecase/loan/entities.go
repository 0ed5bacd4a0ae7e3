package loan

import (
	"time"

	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/domain/loan"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type CreateLoanProposalInput struct {
	Borrower   common.Address
	Collateral collateral.Ref
	Principal  decimal.Decimal
	AnnualRate uint32 // basis points
	MaxPeriod  int64  // seconds
}

type LoanDTO struct {
	LoanID     uint64          `json:"loan_id"`
	Borrower   string          `json:"borrower"`
	Registry   string          `json:"collateral_registry"`
	ItemID     uint64          `json:"collateral_item_id"`
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate uint32          `json:"annual_rate"`
	MaxPeriod  int64           `json:"max_period"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	FundsHeld  decimal.Decimal `json:"funds_held"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	AuctionID  *uint64         `json:"auction_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:     l.ID,
		Borrower:   l.Borrower.Hex(),
		Registry:   l.Registry.Hex(),
		ItemID:     l.ItemID,
		Principal:  l.Principal,
		AnnualRate: l.AnnualRate,
		MaxPeriod:  l.MaxPeriod,
		AmountOwed: l.AmountOwed(),
		Status:     string(l.Status),
		StatusCode: l.Status.Index(),
		FundsHeld:  l.FundsHeld,
		StartedAt:  l.StartedAt,
		AuctionID:  l.AuctionID,
		CreatedAt:  l.CreatedAt,
	}
	if at, ok := l.ExpiresAt(); ok {
		dto.ExpiresAt = &at
	}
	return dto
}

type LenderDTO struct {
	Lender    string          `json:"lender"`
	Principal decimal.Decimal `json:"principal"`
}

// PayoutDTO reports funds sent out of custody by a claim.
type PayoutDTO struct {
	LoanID uint64          `json:"loan_id"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
}
