package loan

import (
	"context"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/uow"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ClaimLoanedTokens starts a fully funded loan and pays the escrow to the borrower.
func (u *Usecase) ClaimLoanedTokens(ctx context.Context, loanID uint64, caller common.Address) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.mutate(ctx, "claim_loaned_tokens", loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Require(loan.StatusProposed); err != nil {
			return err
		}
		if !l.IsBorrower(caller) {
			return loan.ErrNotLoanAuthor
		}
		ledger, err := ledgerOf(ctx, r, l.ID)
		if err != nil {
			return err
		}
		if !ledger.Total().Equal(l.Principal) {
			return loan.ErrLoanNotFunded
		}

		disbursed := l.FundsHeld
		now := u.now()
		l.FundsHeld = decimal.Zero
		l.Start(now)
		if err := l.MoveTo(loan.StatusStarted); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindLoanStarted, caller, disbursed); err != nil {
			return err
		}
		if err := u.escrowFor(r).Payout(ctx, l.Borrower, disbursed); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ReturnLoan collects principal plus interest from the borrower and returns
// the collateral.
func (u *Usecase) ReturnLoan(ctx context.Context, loanID uint64, caller common.Address) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.mutate(ctx, "return_loan", loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Require(loan.StatusStarted); err != nil {
			return err
		}
		if !l.IsBorrower(caller) {
			return loan.ErrNotLoanAuthor
		}

		owed := l.AmountOwed()
		l.FundsHeld = owed
		l.Recovered = owed
		if err := l.MoveTo(loan.StatusReturned); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindLoanReturned, caller, owed); err != nil {
			return err
		}
		esc := u.escrowFor(r)
		if err := esc.Deposit(ctx, caller, owed); err != nil {
			return err
		}
		if err := esc.ReleaseCollateral(ctx, l.Borrower, l.Collateral()); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// LiquidateCollateral sends the collateral of an expired loan to auction.
// Anyone may call it.
func (u *Usecase) LiquidateCollateral(ctx context.Context, loanID uint64, caller common.Address) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.mutate(ctx, "liquidate_collateral", loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Require(loan.StatusStarted); err != nil {
			return err
		}
		if !l.Expired(u.now()) {
			return loan.ErrLoanNotExpired
		}

		if err := l.MoveTo(loan.StatusLiquidating); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		auctionID, err := u.bridgeFor(r).Start(ctx, l.Collateral())
		if err != nil {
			return err
		}
		l.AuctionID = &auctionID
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindLiquidationStarted, caller, decimal.Zero); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
