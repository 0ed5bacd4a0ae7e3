package keeper

import (
	"context"
	"testing"
	"time"

	"nft-lending-backend/internal/adapter/repository/mysql"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/testutil/sqlitedb"
	loanuc "nft-lending-backend/internal/usecase/loan"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeeperLiquidatesExpiredLoan(t *testing.T) {
	ctx := context.Background()
	db := sqlitedb.Open(t)
	custody := common.HexToAddress("0x1000000000000000000000000000000000000001")
	house := common.HexToAddress("0x2000000000000000000000000000000000000002")
	nft := common.HexToAddress("0x3000000000000000000000000000000000000003")
	borrower := common.HexToAddress("0x00000000000000000000000000000000000000b0")
	lender := common.HexToAddress("0x00000000000000000000000000000000000000a1")

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := loanuc.NewUsecase(mysql.NewGormUoW(db, house), custody, loanuc.WithClock(func() time.Time { return now }))
	assets := mysql.NewAssetLedger(db)
	items := mysql.NewCollateralRegistry(db)

	ref, err := items.Mint(ctx, nft, borrower, "")
	require.NoError(t, err)
	require.NoError(t, items.Approve(ctx, borrower, custody, ref))
	require.NoError(t, assets.Mint(ctx, lender, decimal.NewFromInt(100)))
	require.NoError(t, assets.Approve(ctx, lender, custody, decimal.NewFromInt(100)))

	dto, err := uc.CreateLoanProposal(ctx, loanuc.CreateLoanProposalInput{
		Borrower: borrower, Collateral: ref, Principal: decimal.NewFromInt(100), AnnualRate: 1500, MaxPeriod: 3600,
	})
	require.NoError(t, err)
	_, err = uc.UpdateProposalParticipation(ctx, dto.LoanID, lender, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = uc.ClaimLoanedTokens(ctx, dto.LoanID, borrower)
	require.NoError(t, err)

	k := New(uc, keeperAddr, 10, nil)
	res, err := k.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Liquidated, "not yet expired")

	now = now.Add(time.Hour)
	res, err = k.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{dto.LoanID}, res.Liquidated)

	st, err := uc.GetLoanStatus(ctx, dto.LoanID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusLiquidating, st)
}
