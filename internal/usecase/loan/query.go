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

func (u *Usecase) GetLoan(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.view(ctx, loanID, func(_ uow.Repos, l *loan.Loan) error {
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) GetLoanStatus(ctx context.Context, loanID uint64) (loan.Status, error) {
	var s loan.Status
	err := u.view(ctx, loanID, func(_ uow.Repos, l *loan.Loan) error {
		s = l.Status
		return nil
	})
	return s, err
}

// GetLoanLenders lists live lenders in commitment order.
func (u *Usecase) GetLoanLenders(ctx context.Context, loanID uint64) ([]LenderDTO, error) {
	var out []LenderDTO
	err := u.view(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		rows, err := r.Participations.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]LenderDTO, 0, len(rows))
		for _, p := range rows {
			out = append(out, LenderDTO{Lender: p.Lender.Hex(), Principal: p.Principal})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetLoanLenderAmount is zero for lenders without a live entry.
func (u *Usecase) GetLoanLenderAmount(ctx context.Context, loanID uint64, lender common.Address) (decimal.Decimal, error) {
	amount := decimal.Zero
	err := u.view(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		ledger, err := ledgerOf(ctx, r, l.ID)
		if err != nil {
			return err
		}
		amount = ledger.AmountOf(lender)
		return nil
	})
	return amount, err
}

func (u *Usecase) ListLoanEvents(ctx context.Context, loanID uint64) ([]event.Event, error) {
	var out []event.Event
	err := u.view(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		var err error
		out, err = r.Events.ListByLoan(ctx, l.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListExpired returns ids of started loans past their deadline.
func (u *Usecase) ListExpired(ctx context.Context, limit int) ([]uint64, error) {
	now := u.now()
	var ids []uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		expired, err := r.Loans.ListExpired(ctx, now, limit)
		if err != nil {
			return err
		}
		for i := range expired {
			ids = append(ids, expired[i].ID)
		}
		return nil
	})
	return ids, err
}

func (u *Usecase) CalcAmountWithInterest(principal decimal.Decimal, annualRate uint32) decimal.Decimal {
	return interest.CalcAmountWithInterest(principal, annualRate)
}
