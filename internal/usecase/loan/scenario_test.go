package loan

import (
	"context"
	"testing"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnedLoan_TwoLenders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.propose(t, 100)
	assert.Equal(t, custody, f.owner(t), "collateral in custody after proposal")

	_, err := f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(27))
	require.NoError(t, err)
	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderB, u(73))
	require.NoError(t, err)
	assertAmount(t, 100, f.balance(t, custody), "custody after funding")

	started, err := f.uc.ClaimLoanedTokens(ctx, id, borrower)
	require.NoError(t, err)
	assert.Equal(t, string(loan.StatusStarted), started.Status)
	assert.True(t, started.FundsHeld.IsZero())
	require.NotNil(t, started.StartedAt)
	assert.Equal(t, f.clock.Now(), *started.StartedAt)
	assertAmount(t, 1100, f.balance(t, borrower), "borrower after disbursement")
	assertAmount(t, 0, f.balance(t, custody), "custody after disbursement")

	returned, err := f.uc.ReturnLoan(ctx, id, borrower)
	require.NoError(t, err)
	assertAmount(t, 115, returned.FundsHeld, "funds held after return")
	assertAmount(t, 985, f.balance(t, borrower), "borrower after return")
	assert.Equal(t, borrower, f.owner(t), "collateral back with borrower")

	a, err := f.uc.ClaimLoanedReturns(ctx, id, lenderA)
	require.NoError(t, err)
	assertAmount(t, 31, a.Amount, "lender A payout")
	assertAmount(t, 0, f.lenderAmount(t, id, lenderA), "lender A entry")

	b, err := f.uc.ClaimLoanedReturns(ctx, id, lenderB)
	require.NoError(t, err)
	assertAmount(t, 84, b.Amount, "lender B payout")

	assertAmount(t, 1004, f.balance(t, lenderA), "lender A balance")
	assertAmount(t, 1011, f.balance(t, lenderB), "lender B balance")
	assertAmount(t, 0, f.balance(t, custody), "custody drained")

	lenders, err := f.uc.GetLoanLenders(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, lenders)
	dto, err := f.uc.GetLoan(ctx, id)
	require.NoError(t, err)
	assert.True(t, dto.FundsHeld.IsZero())
	assert.Equal(t, string(loan.StatusReturned), dto.Status)

	_, err = f.uc.ClaimLoanedReturns(ctx, id, lenderA)
	assert.ErrorIs(t, err, loan.ErrNotLoanLender)
}

func TestReturnedLoan_ClaimOrderDoesNotChangeEarlyShare(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.propose(t, 100)
	_, err := f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(27))
	require.NoError(t, err)
	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderB, u(73))
	require.NoError(t, err)
	_, err = f.uc.ClaimLoanedTokens(ctx, id, borrower)
	require.NoError(t, err)
	_, err = f.uc.ReturnLoan(ctx, id, borrower)
	require.NoError(t, err)

	// B first: its own principal plus floored interest
	b, err := f.uc.ClaimLoanedReturns(ctx, id, lenderB)
	require.NoError(t, err)
	assertAmount(t, 83, b.Amount, "lender B payout")
	a, err := f.uc.ClaimLoanedReturns(ctx, id, lenderA)
	require.NoError(t, err)
	assertAmount(t, 32, a.Amount, "lender A sweeps remainder")
	assertAmount(t, 0, f.balance(t, custody), "custody drained")
}

func TestLiquidatedLoan_SingleLender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.propose(t, 100)
	_, err := f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(100))
	require.NoError(t, err)
	_, err = f.uc.ClaimLoanedTokens(ctx, id, borrower)
	require.NoError(t, err)

	f.clock.Advance(week*1e9 - 1)
	_, err = f.uc.LiquidateCollateral(ctx, id, lenderA)
	assert.ErrorIs(t, err, loan.ErrLoanNotExpired)

	f.clock.Advance(1)
	liq, err := f.uc.LiquidateCollateral(ctx, id, lenderA)
	require.NoError(t, err)
	assert.Equal(t, string(loan.StatusLiquidating), liq.Status)
	require.NotNil(t, liq.AuctionID)
	assert.Equal(t, house, f.owner(t), "collateral with auction house")

	_, err = f.uc.ClaimAuction(ctx, id, lenderA)
	assert.ErrorIs(t, err, loan.ErrAuctionNotFinished)

	require.NoError(t, f.assets.Mint(ctx, bidder, u(125)))
	require.NoError(t, f.assets.Approve(ctx, bidder, house, u(125)))
	require.NoError(t, f.auctions.Finish(ctx, *liq.AuctionID, bidder, u(125)))
	assert.Equal(t, bidder, f.owner(t), "collateral with winner")

	profit, err := f.uc.ClaimAuction(ctx, id, lenderA)
	require.NoError(t, err)
	assertAmount(t, 10, profit.Amount, "liquidator profit")
	assertAmount(t, 115, f.balance(t, custody), "custody keeps amount owed")

	ret, err := f.uc.ClaimLoanedReturns(ctx, id, lenderA)
	require.NoError(t, err)
	assertAmount(t, 115, ret.Amount, "lender payout")
	// 1000 - 100 + 10 + 115
	assertAmount(t, 1025, f.balance(t, lenderA), "lender balance")
	assertAmount(t, 0, f.balance(t, custody), "custody drained")

	st, err := f.uc.GetLoanStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusLiquidated, st)
}

func TestLiquidatedLoan_Shortfall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.propose(t, 100)
	_, err := f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(27))
	require.NoError(t, err)
	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderB, u(73))
	require.NoError(t, err)
	_, err = f.uc.ClaimLoanedTokens(ctx, id, borrower)
	require.NoError(t, err)
	f.clock.Advance(week * 1e9)
	liq, err := f.uc.LiquidateCollateral(ctx, id, stranger)
	require.NoError(t, err)

	require.NoError(t, f.assets.Mint(ctx, bidder, u(50)))
	require.NoError(t, f.assets.Approve(ctx, bidder, house, u(50)))
	require.NoError(t, f.auctions.Finish(ctx, *liq.AuctionID, bidder, u(50)))

	profit, err := f.uc.ClaimAuction(ctx, id, stranger)
	require.NoError(t, err)
	assert.True(t, profit.Amount.IsZero())

	a, err := f.uc.ClaimLoanedReturns(ctx, id, lenderA)
	require.NoError(t, err)
	assertAmount(t, 13, a.Amount, "lender A pro-rata")
	b, err := f.uc.ClaimLoanedReturns(ctx, id, lenderB)
	require.NoError(t, err)
	assertAmount(t, 37, b.Amount, "lender B remainder")
	assertAmount(t, 0, f.balance(t, custody), "custody drained")
}

func TestParticipationSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.propose(t, 100)

	steps := []int64{7, 3, 25}
	for _, amt := range steps {
		_, err := f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(amt))
		require.NoError(t, err)
		assertAmount(t, amt, f.lenderAmount(t, id, lenderA), "committed")
		assertAmount(t, amt, f.balance(t, custody), "escrow")
		assertAmount(t, 1000-amt, f.balance(t, lenderA), "lender balance")
		dto, err := f.uc.GetLoan(ctx, id)
		require.NoError(t, err)
		assertAmount(t, amt, dto.FundsHeld, "funds held")
	}

	_, err := f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(25))
	assert.ErrorIs(t, err, loan.ErrSameAmount)
	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(0))
	assert.ErrorIs(t, err, loan.ErrZeroAmount)
	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(101))
	assert.ErrorIs(t, err, loan.ErrExceedsLoanAmount)

	refund, err := f.uc.CancelProposalParticipation(ctx, id, lenderA)
	require.NoError(t, err)
	assertAmount(t, 25, refund.Amount, "refund")
	assertAmount(t, 0, f.lenderAmount(t, id, lenderA), "committed after cancel")
	assertAmount(t, 0, f.balance(t, custody), "escrow after cancel")
	assertAmount(t, 1000, f.balance(t, lenderA), "lender balance after cancel")

	_, err = f.uc.CancelProposalParticipation(ctx, id, lenderA)
	assert.ErrorIs(t, err, loan.ErrNotLoanLender)

	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(100))
	require.NoError(t, err)
	assertAmount(t, 100, f.balance(t, custody), "escrow at full funding")
	assertAmount(t, 900, f.balance(t, lenderA), "lender balance at full funding")
}

func TestParticipationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.propose(t, 100)

	for _, step := range []struct {
		lender common.Address
		amt    int64
	}{{lenderA, 10}, {lenderB, 20}, {lenderA, 15}} {
		_, err := f.uc.UpdateProposalParticipation(ctx, id, step.lender, u(step.amt))
		require.NoError(t, err)
	}
	lenders, err := f.uc.GetLoanLenders(ctx, id)
	require.NoError(t, err)
	require.Len(t, lenders, 2)
	assert.Equal(t, lenderA.Hex(), lenders[0].Lender, "update keeps position")
	assertAmount(t, 15, lenders[0].Principal, "lender A")

	_, err = f.uc.CancelProposalParticipation(ctx, id, lenderA)
	require.NoError(t, err)
	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(5))
	require.NoError(t, err)
	lenders, err = f.uc.GetLoanLenders(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{lenderB.Hex(), lenderA.Hex()}, []string{lenders[0].Lender, lenders[1].Lender})
}

func TestEventsFollowLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.propose(t, 100)
	_, err := f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(100))
	require.NoError(t, err)
	_, err = f.uc.ClaimLoanedTokens(ctx, id, borrower)
	require.NoError(t, err)
	f.clock.Advance(week * 1e9)
	_, err = f.uc.LiquidateCollateral(ctx, id, lenderA)
	require.NoError(t, err)

	evs, err := f.uc.ListLoanEvents(ctx, id)
	require.NoError(t, err)
	kinds := make([]event.Kind, 0, len(evs))
	for _, e := range evs {
		kinds = append(kinds, e.Kind)
		assert.Equal(t, id, e.LoanID)
	}
	assert.Equal(t, []event.Kind{
		event.KindLoanProposalCreated,
		event.KindParticipationUpdated,
		event.KindLoanStarted,
		event.KindLiquidationStarted,
	}, kinds)
	last := evs[len(evs)-1]
	require.NotNil(t, last.AuctionID, "liquidation event carries the auction id")
}

func TestCancelLoanProposal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.propose(t, 100)

	_, err := f.uc.CancelLoanProposal(ctx, id, stranger)
	assert.ErrorIs(t, err, loan.ErrNotLoanAuthor)

	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(10))
	require.NoError(t, err)
	_, err = f.uc.CancelLoanProposal(ctx, id, borrower)
	assert.ErrorIs(t, err, loan.ErrLoanHasLenders)

	_, err = f.uc.CancelProposalParticipation(ctx, id, lenderA)
	require.NoError(t, err)
	dto, err := f.uc.CancelLoanProposal(ctx, id, borrower)
	require.NoError(t, err)
	assert.Equal(t, string(loan.StatusCancelled), dto.Status)
	assert.Equal(t, borrower, f.owner(t))

	_, err = f.uc.CancelLoanProposal(ctx, id, borrower)
	assert.ErrorIs(t, err, loan.ErrIllegalLoanStatus)
	_, err = f.uc.UpdateProposalParticipation(ctx, id, lenderA, u(10))
	assert.ErrorIs(t, err, loan.ErrIllegalLoanStatus)
}
