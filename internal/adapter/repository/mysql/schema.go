package mysql

import (
	"time"

	"nft-lending-backend/internal/domain/asset"
	"nft-lending-backend/internal/domain/auction"
	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/participation"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Models lists every table of the service, in migration order.
func Models() []any {
	return []any{
		&loan.Loan{},
		&participation.Participation{},
		&event.Event{},
		&asset.Balance{},
		&asset.Allowance{},
		&collateral.Item{},
		&auction.Auction{},
	}
}

// Migrate creates or updates the schema. SQLite gets text amount columns:
// its NUMERIC affinity would turn 256-bit integers into lossy REALs.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return db.AutoMigrate(sqliteModels()...)
	}
	return db.AutoMigrate(Models()...)
}

// --- SQLite-friendly schema (no DECIMAL affinity, no engine specifics) ---

type loanSQLite struct {
	ID         uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	Borrower   common.Address  `gorm:"column:borrower;type:blob;index"`
	Registry   common.Address  `gorm:"column:collateral_registry;type:blob"`
	ItemID     uint64          `gorm:"column:collateral_item_id"`
	Principal  decimal.Decimal `gorm:"column:principal;type:text"`
	AnnualRate uint32          `gorm:"column:annual_rate"`
	MaxPeriod  int64           `gorm:"column:max_period"`
	Status     string          `gorm:"column:status;type:text;index"`
	StartedAt  *time.Time      `gorm:"column:started_at"`
	AuctionID  *uint64         `gorm:"column:auction_id"`
	Deadline   int64           `gorm:"column:deadline;index:idx_loans_deadline;not null;default:0"`
	FundsHeld  decimal.Decimal `gorm:"column:funds_held;type:text"`
	Recovered  decimal.Decimal `gorm:"column:recovered;type:text"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type participationSQLite struct {
	ID        uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	LoanID    uint64          `gorm:"column:loan_id;uniqueIndex:ux_participations_loan_lender"`
	Lender    common.Address  `gorm:"column:lender;type:blob;uniqueIndex:ux_participations_loan_lender"`
	Principal decimal.Decimal `gorm:"column:principal;type:text"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (participationSQLite) TableName() string { return "loan_participations" }

type eventSQLite struct {
	ID          uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	EventID     string          `gorm:"column:event_id;type:text;uniqueIndex"`
	LoanID      uint64          `gorm:"column:loan_id;index"`
	Kind        string          `gorm:"column:kind;type:text"`
	Actor       common.Address  `gorm:"column:actor;type:blob"`
	Amount      decimal.Decimal `gorm:"column:amount;type:text"`
	AuctionID   *uint64         `gorm:"column:auction_id"`
	PublishedAt *time.Time      `gorm:"column:published_at;index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (eventSQLite) TableName() string { return "loan_events" }

type balanceSQLite struct {
	Holder    common.Address  `gorm:"primaryKey;column:holder;type:blob"`
	Amount    decimal.Decimal `gorm:"column:amount;type:text"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (balanceSQLite) TableName() string { return "asset_balances" }

type allowanceSQLite struct {
	Owner     common.Address  `gorm:"primaryKey;column:owner;type:blob"`
	Spender   common.Address  `gorm:"primaryKey;column:spender;type:blob"`
	Amount    decimal.Decimal `gorm:"column:amount;type:text"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (allowanceSQLite) TableName() string { return "asset_allowances" }

type itemSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	Registry  common.Address `gorm:"column:registry;type:blob;uniqueIndex:ux_collateral_items_ref"`
	ItemID    uint64         `gorm:"column:item_id;uniqueIndex:ux_collateral_items_ref"`
	Owner     common.Address `gorm:"column:owner;type:blob;index"`
	Approved  common.Address `gorm:"column:approved;type:blob"`
	URI       string         `gorm:"column:uri;type:text"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (itemSQLite) TableName() string { return "collateral_items" }

type auctionSQLite struct {
	ID        uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	Seller    common.Address  `gorm:"column:seller;type:blob"`
	Registry  common.Address  `gorm:"column:registry;type:blob"`
	ItemID    uint64          `gorm:"column:item_id"`
	Status    string          `gorm:"column:status;type:text"`
	WinPrice  decimal.Decimal `gorm:"column:win_price;type:text"`
	Winner    common.Address  `gorm:"column:winner;type:blob"`
	SettledAt *time.Time      `gorm:"column:settled_at"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (auctionSQLite) TableName() string { return "auctions" }

func sqliteModels() []any {
	return []any{
		&loanSQLite{}, &participationSQLite{}, &eventSQLite{},
		&balanceSQLite{}, &allowanceSQLite{}, &itemSQLite{}, &auctionSQLite{},
	}
}
