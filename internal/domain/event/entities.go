// Package event is the observer-visible notification log. Every mutating loan
// operation appends exactly one event in the same transaction as its state
// change; nothing reads events back to make decisions.
package event

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindLoanProposalCreated    Kind = "LoanProposalCreated"
	KindLoanProposalCancelled  Kind = "LoanProposalCancelled"
	KindParticipationUpdated   Kind = "ProposalParticipationUpdated"
	KindParticipationCancelled Kind = "ProposalParticipationCancelled"
	KindLoanStarted            Kind = "LoanStarted"
	KindLoanReturned           Kind = "LoanReturned"
	KindLiquidationStarted     Kind = "LoanLiquidationStarted"
	KindLiquidated             Kind = "LoanLiquidated"
	KindReturnsClaimed         Kind = "LoanReturnsClaimed"
)

type Event struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EventID     string          `gorm:"column:event_id;type:char(32);not null;uniqueIndex" json:"event_id"`
	LoanID      uint64          `gorm:"column:loan_id;not null;index" json:"loan_id"`
	Kind        Kind            `gorm:"column:kind;type:varchar(48);not null" json:"kind"`
	Actor       common.Address  `gorm:"column:actor;type:bytes;size:20;not null" json:"actor"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(65,0);not null" json:"amount"`
	AuctionID   *uint64         `gorm:"column:auction_id" json:"auction_id,omitempty"`
	PublishedAt *time.Time      `gorm:"column:published_at;index" json:"-"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "loan_events" }

type Repository interface {
	Append(ctx context.Context, e *Event) error
	ListByLoan(ctx context.Context, loanID uint64) ([]Event, error)
	ListUnpublished(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, ids []uint64, at time.Time) error
}
