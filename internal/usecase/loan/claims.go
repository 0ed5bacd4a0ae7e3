package loan

import (
	"context"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/uow"
	"nft-lending-backend/pkg/interest"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ClaimAuction finalizes a settled liquidation. The amount owed stays in
// custody for the lenders; any surplus goes to the caller. On a shortfall the
// whole price is kept for the lenders and the caller gets nothing.
func (u *Usecase) ClaimAuction(ctx context.Context, loanID uint64, caller common.Address) (*PayoutDTO, error) {
	var out *PayoutDTO
	err := u.mutate(ctx, "claim_auction", loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Require(loan.StatusLiquidating); err != nil {
			return err
		}
		if l.AuctionID == nil {
			return loan.ErrAuctionNotFinished
		}
		price, settled, err := u.bridgeFor(r).SettledPrice(ctx, *l.AuctionID)
		if err != nil {
			return err
		}
		if !settled {
			return loan.ErrAuctionNotFinished
		}

		recovered := decimal.Min(price, l.AmountOwed())
		profit := price.Sub(recovered)
		l.FundsHeld = recovered
		l.Recovered = recovered
		if err := l.MoveTo(loan.StatusLiquidated); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindLiquidated, caller, profit); err != nil {
			return err
		}
		if err := u.escrowFor(r).Payout(ctx, caller, profit); err != nil {
			return err
		}
		out = &PayoutDTO{LoanID: l.ID, To: caller.Hex(), Amount: profit, Status: string(l.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClaimLoanedReturns pays a lender its share of a returned or liquidated loan
// and removes its entry.
func (u *Usecase) ClaimLoanedReturns(ctx context.Context, loanID uint64, caller common.Address) (*PayoutDTO, error) {
	var out *PayoutDTO
	err := u.mutate(ctx, "claim_loaned_returns", loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.Status.Claimable() {
			return loan.ErrIllegalLoanStatus
		}
		ledger, err := ledgerOf(ctx, r, l.ID)
		if err != nil {
			return err
		}
		p, ok := ledger.Find(caller)
		if !ok {
			return loan.ErrNotLoanLender
		}

		due := lenderShare(l, p.Principal, ledger.IsLast(caller))
		l.FundsHeld = l.FundsHeld.Sub(due)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := r.Participations.Delete(ctx, p); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindReturnsClaimed, caller, due); err != nil {
			return err
		}
		if err := u.escrowFor(r).Payout(ctx, caller, due); err != nil {
			return err
		}
		out = &PayoutDTO{LoanID: l.ID, To: caller.Hex(), Amount: due, Status: string(l.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lenderShare is principal plus its own floored interest when the loan was
// repaid in full, or a floored pro-rata part of what was recovered otherwise.
// The last lender to claim takes whatever is left, so custody drains to zero.
func lenderShare(l *loan.Loan, principal decimal.Decimal, last bool) decimal.Decimal {
	if last {
		return l.FundsHeld
	}
	if l.Recovered.Equal(l.AmountOwed()) {
		return interest.CalcAmountWithInterest(principal, l.AnnualRate)
	}
	return interest.ProRata(l.Recovered, principal, l.Principal)
}
