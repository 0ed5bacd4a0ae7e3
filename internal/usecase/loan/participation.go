package loan

import (
	"context"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/participation"
	"nft-lending-backend/internal/domain/uow"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// UpdateProposalParticipation sets lender's commitment to amount, pulling or
// refunding the difference. New lenders join at the end of the order.
func (u *Usecase) UpdateProposalParticipation(ctx context.Context, loanID uint64, lender common.Address, amount decimal.Decimal) (*LenderDTO, error) {
	err := u.mutate(ctx, "update_participation", loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Require(loan.StatusProposed); err != nil {
			return err
		}
		ledger, err := ledgerOf(ctx, r, l.ID)
		if err != nil {
			return err
		}
		delta, err := ledger.CheckUpdate(l.Principal, lender, amount)
		if err != nil {
			return err
		}

		if p, ok := ledger.Find(lender); ok {
			p.Principal = amount
			err = r.Participations.Save(ctx, p)
		} else {
			err = r.Participations.Create(ctx, &participation.Participation{LoanID: l.ID, Lender: lender, Principal: amount})
		}
		if err != nil {
			return err
		}
		l.FundsHeld = l.FundsHeld.Add(delta)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindParticipationUpdated, lender, amount); err != nil {
			return err
		}

		esc := u.escrowFor(r)
		if delta.IsPositive() {
			return esc.Deposit(ctx, lender, delta)
		}
		return esc.Payout(ctx, lender, delta.Neg())
	})
	if err != nil {
		return nil, err
	}
	return &LenderDTO{Lender: lender.Hex(), Principal: amount}, nil
}

// CancelProposalParticipation withdraws lender entirely and refunds its principal.
func (u *Usecase) CancelProposalParticipation(ctx context.Context, loanID uint64, lender common.Address) (*PayoutDTO, error) {
	var out *PayoutDTO
	err := u.mutate(ctx, "cancel_participation", loanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.Require(loan.StatusProposed); err != nil {
			return err
		}
		ledger, err := ledgerOf(ctx, r, l.ID)
		if err != nil {
			return err
		}
		p, ok := ledger.Find(lender)
		if !ok {
			return loan.ErrNotLoanLender
		}

		refund := p.Principal
		if err := r.Participations.Delete(ctx, p); err != nil {
			return err
		}
		l.FundsHeld = l.FundsHeld.Sub(refund)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := emit(ctx, r, l, event.KindParticipationCancelled, lender, refund); err != nil {
			return err
		}
		if err := u.escrowFor(r).Payout(ctx, lender, refund); err != nil {
			return err
		}
		out = &PayoutDTO{LoanID: l.ID, To: lender.Hex(), Amount: refund, Status: string(l.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
