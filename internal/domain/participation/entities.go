package participation

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Table: loan_participations. One live row per (loan, lender); rows are
// deleted, never zeroed, when a lender withdraws or claims. The auto-increment
// ID doubles as the commitment order.
type Participation struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	LoanID    uint64          `gorm:"column:loan_id;not null;uniqueIndex:ux_participations_loan_lender"`
	Lender    common.Address  `gorm:"column:lender;type:bytes;size:20;not null;uniqueIndex:ux_participations_loan_lender"`
	Principal decimal.Decimal `gorm:"column:principal;type:decimal(65,0);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Participation) TableName() string { return "loan_participations" }
