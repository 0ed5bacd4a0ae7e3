package loan

import (
	"context"
	"testing"
	"time"

	"nft-lending-backend/internal/adapter/repository/mysql"
	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/testutil/sqlitedb"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	custody  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	house    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	nft      = common.HexToAddress("0x3000000000000000000000000000000000000003")
	borrower = common.HexToAddress("0x00000000000000000000000000000000000000b0")
	lenderA  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	lenderB  = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	bidder   = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	stranger = common.HexToAddress("0x00000000000000000000000000000000000000ff")
)

const week = 7 * 24 * 3600

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	uc       *Usecase
	db       *gorm.DB
	assets   *mysql.AssetLedger
	items    *mysql.CollateralRegistry
	auctions *mysql.AuctionService
	clock    *clock
	item     collateral.Ref
}

func u(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// newFixture funds every party with 1000 units, approves custody for all of
// it, and mints one item to the borrower already approved to custody.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := sqlitedb.Open(t)
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	f := &fixture{
		uc:     NewUsecase(mysql.NewGormUoW(db, house), custody, WithClock(clk.Now)),
		db:     db,
		assets: mysql.NewAssetLedger(db),
		items:  mysql.NewCollateralRegistry(db),
		clock:  clk,
	}
	f.auctions = mysql.NewAuctionService(db, house, f.assets, f.items)

	for _, who := range []common.Address{borrower, lenderA, lenderB, stranger} {
		require.NoError(t, f.assets.Mint(ctx, who, u(1000)))
		require.NoError(t, f.assets.Approve(ctx, who, custody, u(1000)))
	}
	f.item = f.mintItem(t, borrower)
	return f
}

func (f *fixture) mintItem(t *testing.T, owner common.Address) collateral.Ref {
	t.Helper()
	ctx := context.Background()
	ref, err := f.items.Mint(ctx, nft, owner, "")
	require.NoError(t, err)
	require.NoError(t, f.items.Approve(ctx, owner, custody, ref))
	return ref
}

func (f *fixture) propose(t *testing.T, principal int64) uint64 {
	t.Helper()
	dto, err := f.uc.CreateLoanProposal(context.Background(), CreateLoanProposalInput{
		Borrower:   borrower,
		Collateral: f.item,
		Principal:  u(principal),
		AnnualRate: 1500,
		MaxPeriod:  week,
	})
	require.NoError(t, err)
	return dto.LoanID
}

func (f *fixture) balance(t *testing.T, who common.Address) decimal.Decimal {
	t.Helper()
	b, err := f.assets.BalanceOf(context.Background(), who)
	require.NoError(t, err)
	return b
}

func (f *fixture) owner(t *testing.T) common.Address {
	t.Helper()
	o, err := f.items.OwnerOf(context.Background(), f.item)
	require.NoError(t, err)
	return o
}

func (f *fixture) lenderAmount(t *testing.T, id uint64, lender common.Address) decimal.Decimal {
	t.Helper()
	a, err := f.uc.GetLoanLenderAmount(context.Background(), id, lender)
	require.NoError(t, err)
	return a
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	if !got.Equal(u(want)) {
		t.Fatalf("%s = %s, want %d", msg, got, want)
	}
}
