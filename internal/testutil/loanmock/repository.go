package loanmock

import (
	"context"
	"time"

	domain "nft-lending-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups default to domain.ErrLoanNotExists, writes succeed.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Loan) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Loan, error)
	SaveFn             func(ctx context.Context, l *domain.Loan) error
	ListByStatusFn     func(ctx context.Context, status domain.Status, limit int) ([]domain.Loan, error)
	ListExpiredFn      func(ctx context.Context, now time.Time, limit int) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrLoanNotExists
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrLoanNotExists
}
func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
func (m *Repo) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, limit)
	}
	return nil, nil
}
func (m *Repo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Loan, error) {
	if m.ListExpiredFn != nil {
		return m.ListExpiredFn(ctx, now, limit)
	}
	return nil, nil
}
