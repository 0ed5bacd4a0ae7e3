package loanmock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "nft-lending-backend/internal/domain/loan"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Create(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if err := m.Save(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Save default: %v", err)
	}
	if _, err := m.GetByID(ctx, 1); !errors.Is(err, domain.ErrLoanNotExists) {
		t.Fatalf("GetByID default: want ErrLoanNotExists, got %v", err)
	}
	if _, err := m.GetByIDForUpdate(ctx, 1); !errors.Is(err, domain.ErrLoanNotExists) {
		t.Fatalf("GetByIDForUpdate default: want ErrLoanNotExists, got %v", err)
	}
	got, err := m.ListByStatus(ctx, domain.StatusStarted, 10)
	if err != nil || got != nil {
		t.Fatalf("ListByStatus default: %v %v", got, err)
	}
	got, err = m.ListExpired(ctx, time.Now(), 10)
	if err != nil || got != nil {
		t.Fatalf("ListExpired default: %v %v", got, err)
	}
}

func TestRepo_Forwards(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{ID: 7}
	var saved, created *domain.Loan
	var listed domain.Status

	m := &Repo{
		CreateFn:           func(_ context.Context, l *domain.Loan) error { created = l; return nil },
		SaveFn:             func(_ context.Context, l *domain.Loan) error { saved = l; return nil },
		GetByIDFn:          func(_ context.Context, id uint64) (*domain.Loan, error) { return want, nil },
		GetByIDForUpdateFn: func(_ context.Context, id uint64) (*domain.Loan, error) { return want, nil },
		ListByStatusFn: func(_ context.Context, s domain.Status, limit int) ([]domain.Loan, error) {
			listed = s
			return []domain.Loan{*want}, nil
		},
		ListExpiredFn: func(_ context.Context, _ time.Time, limit int) ([]domain.Loan, error) {
			return []domain.Loan{*want}[:limit], nil
		},
	}

	_ = m.Create(ctx, want)
	_ = m.Save(ctx, want)
	if created != want || saved != want {
		t.Fatalf("writes not forwarded")
	}
	if got, _ := m.GetByID(ctx, 7); got != want {
		t.Fatalf("GetByID not forwarded")
	}
	if got, _ := m.GetByIDForUpdate(ctx, 7); got != want {
		t.Fatalf("GetByIDForUpdate not forwarded")
	}
	if got, _ := m.ListByStatus(ctx, domain.StatusStarted, 1); len(got) != 1 || listed != domain.StatusStarted {
		t.Fatalf("ListByStatus not forwarded: %v %s", got, listed)
	}
	if got, _ := m.ListExpired(ctx, time.Now(), 1); len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("ListExpired not forwarded: %v", got)
	}
}
