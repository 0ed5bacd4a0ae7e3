package mysql

import (
	"context"
	"errors"

	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/uow"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

type GormUoW struct {
	db      *gorm.DB
	auction common.Address
}

// NewGormUoW binds every repository and custody collaborator to one
// transaction. auctionAddr is the account of the auction house.
func NewGormUoW(db *gorm.DB, auctionAddr common.Address) *GormUoW {
	return &GormUoW{db: db, auction: auctionAddr}
}

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	assets := &AssetLedger{db: tx}
	items := &CollateralRegistry{db: tx}
	return uow.Repos{
		Loans:          &LoanRepository{db: tx},
		Participations: &ParticipationRepository{db: tx},
		Events:         &EventRepository{db: tx},
		Assets:         assets,
		Collateral:     items,
		Auctions:       NewAuctionService(tx, u.auction, assets, items),
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrLoanNotExists
			}
			return err
		}
		return fn(r, l)
	})
}
