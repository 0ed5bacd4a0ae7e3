package loan

import (
	"math"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/pkg/interest"
)

type Loan struct {
	ID         uint64          `gorm:"primaryKey;column:id;autoIncrement" json:"loan_id"`
	Borrower   common.Address  `gorm:"column:borrower;type:bytes;size:20;index:idx_loans_borrower;not null" json:"borrower"`
	Registry   common.Address  `gorm:"column:collateral_registry;type:bytes;size:20;not null" json:"collateral_registry"`
	ItemID     uint64          `gorm:"column:collateral_item_id;not null" json:"collateral_item_id"`
	Principal  decimal.Decimal `gorm:"column:principal;type:decimal(65,0);not null" json:"principal"`
	AnnualRate uint32          `gorm:"column:annual_rate;not null" json:"annual_rate"`
	MaxPeriod  int64           `gorm:"column:max_period;not null" json:"max_period"` // seconds
	Status     Status          `gorm:"column:status;type:varchar(16);index:idx_loans_status;not null" json:"status"`
	StartedAt  *time.Time      `gorm:"column:started_at" json:"started_at,omitempty"`
	AuctionID  *uint64         `gorm:"column:auction_id" json:"auction_id,omitempty"`
	Deadline   int64           `gorm:"column:deadline;index:idx_loans_deadline;not null;default:0" json:"-"` // unix seconds, set on start
	FundsHeld  decimal.Decimal `gorm:"column:funds_held;type:decimal(65,0);not null" json:"funds_held"`
	Recovered  decimal.Decimal `gorm:"column:recovered;type:decimal(65,0);not null" json:"recovered"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// MaxPeriodLimit is the longest loan period, in seconds, a time.Duration can hold.
const MaxPeriodLimit = int64(math.MaxInt64 / int64(time.Second))

func (Loan) TableName() string { return "loans" }

// ValidatePeriod fails with ErrInvalidPeriod unless 0 <= seconds <= MaxPeriodLimit.
func ValidatePeriod(seconds int64) error {
	if seconds < 0 || seconds > MaxPeriodLimit {
		return ErrInvalidPeriod
	}
	return nil
}

func (l *Loan) Collateral() collateral.Ref {
	return collateral.Ref{Registry: l.Registry, ItemID: l.ItemID}
}

// AmountOwed is what the borrower repays, and what lenders share after a
// fully covered liquidation.
func (l *Loan) AmountOwed() decimal.Decimal {
	return interest.CalcAmountWithInterest(l.Principal, l.AnnualRate)
}

// Start records now as the start time and indexes the deadline, rounded up
// to the whole second.
func (l *Loan) Start(now time.Time) {
	l.StartedAt = &now
	l.Deadline = now.Unix() + min(max(l.MaxPeriod, 0), MaxPeriodLimit)
	if now.Nanosecond() > 0 {
		l.Deadline++
	}
}

// ExpiresAt is StartedAt + MaxPeriod; ok is false before the loan starts.
// Periods outside [0, MaxPeriodLimit] are clamped so the sum cannot wrap.
func (l *Loan) ExpiresAt() (at time.Time, ok bool) {
	if l.StartedAt == nil {
		return time.Time{}, false
	}
	period := min(max(l.MaxPeriod, 0), MaxPeriodLimit)
	return l.StartedAt.Add(time.Duration(period) * time.Second), true
}

func (l *Loan) Expired(now time.Time) bool {
	at, ok := l.ExpiresAt()
	return ok && !now.Before(at)
}

func (l *Loan) IsBorrower(who common.Address) bool { return l.Borrower == who }

// Require fails with ErrIllegalLoanStatus unless the loan is in one of want.
func (l *Loan) Require(want ...Status) error {
	for _, s := range want {
		if l.Status == s {
			return nil
		}
	}
	return ErrIllegalLoanStatus
}

// MoveTo applies a transition from the lifecycle graph.
func (l *Loan) MoveTo(to Status) error {
	if !l.Status.CanMoveTo(to) {
		return ErrIllegalLoanStatus
	}
	l.Status = to
	return nil
}
