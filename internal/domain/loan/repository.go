package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	ListByStatus(ctx context.Context, status Status, limit int) ([]Loan, error)
	// ListExpired returns started loans whose deadline is at or before now,
	// oldest id first.
	ListExpired(ctx context.Context, now time.Time, limit int) ([]Loan, error)
}
