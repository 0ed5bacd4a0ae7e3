package loan

import (
	"context"
	"time"

	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/uow"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// CreateLoanProposal takes the collateral into custody and opens a proposal.
// The borrower must own the item and have approved the custody account.
func (u *Usecase) CreateLoanProposal(ctx context.Context, in CreateLoanProposalInput) (*LoanDTO, error) {
	if !in.Principal.IsPositive() {
		return nil, loan.ErrZeroAmount
	}
	if !in.Principal.IsInteger() {
		return nil, loan.ErrFractionalAmount
	}
	if err := loan.ValidatePeriod(in.MaxPeriod); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var dto *LoanDTO
	start := time.Now()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		owner, err := r.Collateral.OwnerOf(ctx, in.Collateral)
		if err != nil {
			return err
		}
		if owner != in.Borrower {
			return collateral.ErrNotOwnerNorApproved
		}

		l := &loan.Loan{
			Borrower:   in.Borrower,
			Registry:   in.Collateral.Registry,
			ItemID:     in.Collateral.ItemID,
			Principal:  in.Principal,
			AnnualRate: in.AnnualRate,
			MaxPeriod:  in.MaxPeriod,
			Status:     loan.StatusProposed,
			FundsHeld:  decimal.Zero,
			Recovered:  decimal.Zero,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindLoanProposalCreated, in.Borrower, in.Principal); err != nil {
			return err
		}
		if err := u.escrowFor(r).LockCollateral(ctx, in.Borrower, in.Collateral); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	var id uint64
	if dto != nil {
		id = dto.LoanID
	}
	u.done("create_loan_proposal", id, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CancelLoanProposal hands the collateral back. Lenders must withdraw first.
func (u *Usecase) CancelLoanProposal(ctx context.Context, loanID uint64, caller common.Address) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.mutate(ctx, "cancel_loan_proposal", loanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.IsBorrower(caller) {
			return loan.ErrNotLoanAuthor
		}
		if err := l.Require(loan.StatusProposed); err != nil {
			return err
		}
		ledger, err := ledgerOf(ctx, r, l.ID)
		if err != nil {
			return err
		}
		if ledger.Len() > 0 {
			return loan.ErrLoanHasLenders
		}

		if err := l.MoveTo(loan.StatusCancelled); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindLoanProposalCancelled, caller, decimal.Zero); err != nil {
			return err
		}
		if err := u.escrowFor(r).ReleaseCollateral(ctx, l.Borrower, l.Collateral()); err != nil {
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
