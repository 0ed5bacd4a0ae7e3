// Package loan is the loan registry: it owns the loan lifecycle and drives
// custody of collateral and funds through the escrow coordinator and the
// auction bridge.
package loan

import (
	"context"
	"errors"
	"sync"
	"time"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/participation"
	"nft-lending-backend/internal/domain/uow"
	"nft-lending-backend/internal/usecase/auction"
	"nft-lending-backend/internal/usecase/escrow"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Observer receives the outcome of every registry operation.
type Observer interface {
	Observe(op string, err error, took time.Duration)
}

type Usecase struct {
	// mu serializes mutating operations inside this process; the row lock
	// taken by WithinLoanTx covers other processes.
	mu      sync.Mutex
	uow     uow.UnitOfWork
	custody common.Address
	now     func() time.Time
	log     *zap.Logger
	obs     Observer
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithLogger(l *zap.Logger) Option { return func(u *Usecase) { u.log = l } }

func WithObserver(o Observer) Option { return func(u *Usecase) { u.obs = o } }

// NewUsecase: custody is the account that holds collateral and escrowed funds.
func NewUsecase(tx uow.UnitOfWork, custody common.Address, opts ...Option) *Usecase {
	u := &Usecase{
		uow:     tx,
		custody: custody,
		now:     func() time.Time { return time.Now().UTC() },
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Custody() common.Address { return u.custody }

// mutate runs fn on the locked loan inside one transaction.
func (u *Usecase) mutate(ctx context.Context, op string, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	start := time.Now()
	err := u.uow.WithinLoanTx(ctx, loanID, fn)
	u.done(op, loanID, err, time.Since(start))
	return err
}

func (u *Usecase) done(op string, loanID uint64, err error, took time.Duration) {
	if u.obs != nil {
		u.obs.Observe(op, err, took)
	}
	if err != nil {
		u.log.Debug("loan operation rejected",
			zap.String("op", op), zap.Uint64("loan_id", loanID), zap.Error(err))
		return
	}
	u.log.Info("loan operation applied",
		zap.String("op", op), zap.Uint64("loan_id", loanID), zap.Duration("took", took))
}

// view reads without taking the process lock.
func (u *Usecase) view(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrLoanNotExists
			}
			return err
		}
		return fn(r, l)
	})
}

func (u *Usecase) escrowFor(r uow.Repos) *escrow.Coordinator {
	return escrow.New(u.custody, r.Assets, r.Collateral)
}

func (u *Usecase) bridgeFor(r uow.Repos) *auction.Bridge {
	return auction.NewBridge(u.escrowFor(r), r.Auctions)
}

func ledgerOf(ctx context.Context, r uow.Repos, loanID uint64) (participation.Ledger, error) {
	rows, err := r.Participations.ListByLoan(ctx, loanID)
	if err != nil {
		return participation.Ledger{}, err
	}
	return participation.NewLedger(rows), nil
}

func emit(ctx context.Context, r uow.Repos, l *loan.Loan, kind event.Kind, actor common.Address, amount decimal.Decimal) error {
	return r.Events.Append(ctx, &event.Event{
		LoanID:    l.ID,
		Kind:      kind,
		Actor:     actor,
		Amount:    amount,
		AuctionID: l.AuctionID,
	})
}
