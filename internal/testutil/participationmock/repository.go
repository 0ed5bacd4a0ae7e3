package participationmock

import (
	"context"

	domain "nft-lending-backend/internal/domain/participation"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes succeed and reads come back empty unless a function is set.
type Repo struct {
	CreateFn             func(ctx context.Context, p *domain.Participation) error
	SaveFn               func(ctx context.Context, p *domain.Participation) error
	DeleteFn             func(ctx context.Context, p *domain.Participation) error
	ListByLoanFn         func(ctx context.Context, loanID uint64) ([]domain.Participation, error)
	GetByLoanAndLenderFn func(ctx context.Context, loanID uint64, lender common.Address) (*domain.Participation, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Participation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Participation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, p *domain.Participation) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Participation, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}

// GetByLoanAndLender fails with gorm.ErrRecordNotFound by default, like the gorm repository.
func (m *Repo) GetByLoanAndLender(ctx context.Context, loanID uint64, lender common.Address) (*domain.Participation, error) {
	if m.GetByLoanAndLenderFn != nil {
		return m.GetByLoanAndLenderFn(ctx, loanID, lender)
	}
	return nil, gorm.ErrRecordNotFound
}
