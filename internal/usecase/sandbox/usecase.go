// Package sandbox drives the custody collaborators directly so operators and
// integration tests can fund accounts, mint collateral and settle auctions
// against the reference stores.
package sandbox

import (
	"context"
	"fmt"

	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/domain/loan"
	"nft-lending-backend/internal/domain/uow"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log}
}

type AccountDTO struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

type ItemDTO struct {
	Registry string `json:"registry"`
	ItemID   uint64 `json:"item_id"`
	Owner    string `json:"owner"`
	Approved string `json:"approved,omitempty"`
}

func (u *Usecase) MintAssets(ctx context.Context, to common.Address, amount decimal.Decimal) (*AccountDTO, error) {
	switch {
	case !amount.IsPositive():
		return nil, loan.ErrZeroAmount
	case !amount.IsInteger():
		return nil, loan.ErrFractionalAmount
	}
	var out *AccountDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Assets.Mint(ctx, to, amount); err != nil {
			return err
		}
		bal, err := r.Assets.BalanceOf(ctx, to)
		if err != nil {
			return err
		}
		out = &AccountDTO{Address: to.Hex(), Balance: bal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("sandbox mint", zap.String("to", to.Hex()), zap.String("amount", amount.String()))
	return out, nil
}

func (u *Usecase) ApproveAssets(ctx context.Context, owner, spender common.Address, amount decimal.Decimal) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Assets.Approve(ctx, owner, spender, amount)
	})
}

func (u *Usecase) Balance(ctx context.Context, who common.Address) (*AccountDTO, error) {
	var out *AccountDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		bal, err := r.Assets.BalanceOf(ctx, who)
		if err != nil {
			return err
		}
		out = &AccountDTO{Address: who.Hex(), Balance: bal}
		return nil
	})
	return out, err
}

func (u *Usecase) Allowance(ctx context.Context, owner, spender common.Address) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		out, err = r.Assets.Allowance(ctx, owner, spender)
		return err
	})
	return out, err
}

// MintItem creates the next item of registry and gives it to owner.
func (u *Usecase) MintItem(ctx context.Context, registry, owner common.Address, uri string) (*ItemDTO, error) {
	var out *ItemDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ref, err := r.Collateral.Mint(ctx, registry, owner, uri)
		if err != nil {
			return err
		}
		out = &ItemDTO{Registry: ref.Registry.Hex(), ItemID: ref.ItemID, Owner: owner.Hex()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("sandbox item minted", zap.String("registry", registry.Hex()), zap.Uint64("item_id", out.ItemID))
	return out, nil
}

func (u *Usecase) ApproveItem(ctx context.Context, owner, operator common.Address, ref collateral.Ref) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Collateral.Approve(ctx, owner, operator, ref)
	})
}

func (u *Usecase) Item(ctx context.Context, ref collateral.Ref) (*ItemDTO, error) {
	var out *ItemDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		owner, err := r.Collateral.OwnerOf(ctx, ref)
		if err != nil {
			return err
		}
		approved, err := r.Collateral.GetApproved(ctx, ref)
		if err != nil {
			return err
		}
		out = &ItemDTO{Registry: ref.Registry.Hex(), ItemID: ref.ItemID, Owner: owner.Hex()}
		if approved != (common.Address{}) {
			out.Approved = approved.Hex()
		}
		return nil
	})
	return out, err
}

// FinishAuction settles auction id with winner paying price. The winner's
// allowance to the auction account is raised to price first.
func (u *Usecase) FinishAuction(ctx context.Context, id uint64, winner common.Address, price decimal.Decimal) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Assets.Approve(ctx, winner, r.Auctions.Address(), price); err != nil {
			return fmt.Errorf("approve auction: %w", err)
		}
		return r.Auctions.Finish(ctx, id, winner, price)
	})
	if err != nil {
		return err
	}
	u.log.Info("sandbox auction finished",
		zap.Uint64("auction_id", id), zap.String("winner", winner.Hex()), zap.String("price", price.String()))
	return nil
}
