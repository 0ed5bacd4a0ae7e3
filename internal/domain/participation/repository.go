package participation

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type Repository interface {
	Create(ctx context.Context, p *Participation) error
	Save(ctx context.Context, p *Participation) error
	Delete(ctx context.Context, p *Participation) error

	// ListByLoan returns live entries in commitment order.
	ListByLoan(ctx context.Context, loanID uint64) ([]Participation, error)

	GetByLoanAndLender(ctx context.Context, loanID uint64, lender common.Address) (*Participation, error)
}
