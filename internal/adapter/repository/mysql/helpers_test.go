package mysql

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	custodyAddr = common.HexToAddress("0x1000000000000000000000000000000000000001")
	auctionAddr = common.HexToAddress("0x2000000000000000000000000000000000000002")
	nftAddr     = common.HexToAddress("0x3000000000000000000000000000000000000003")
	borrower    = common.HexToAddress("0x00000000000000000000000000000000000000b0")
	lender1     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	lender2     = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	winner      = common.HexToAddress("0x00000000000000000000000000000000000000e1")
)

// openTestDB creates an in-memory sqlite DB and migrates the sqlite-safe schema.
// A single connection keeps every statement on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func units(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// tokens returns n whole tokens at 18 decimals, well past uint64 range for n >= 19.
func tokens(n int64) decimal.Decimal { return decimal.NewFromInt(n).Shift(18) }

func mustBalance(t *testing.T, l *AssetLedger, who common.Address) decimal.Decimal {
	t.Helper()
	b, err := l.BalanceOf(context.Background(), who)
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	return b
}
