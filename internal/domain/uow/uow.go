package uow

import (
	"context"

	"nft-lending-backend/internal/domain/asset"
	"nft-lending-backend/internal/domain/auction"
	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/participation"
)

// Repos is everything an operation may touch, bound to one transaction: the
// registry's own tables and the custody collaborators it drives.
type Repos struct {
	Loans          loan.Repository
	Participations participation.Repository
	Events         event.Repository
	Assets         asset.Ledger
	Collateral     collateral.Registry
	Auctions       auction.Service
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in; unknown ids fail with loan.ErrLoanNotExists
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
