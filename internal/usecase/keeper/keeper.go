// Package keeper liquidates loans that ran past their deadline, so collateral
// does not sit in custody waiting for a lender to act.
package keeper

import (
	"context"

	loanuc "nft-lending-backend/internal/usecase/loan"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type Liquidator interface {
	ListExpired(ctx context.Context, limit int) ([]uint64, error)
	LiquidateCollateral(ctx context.Context, loanID uint64, caller common.Address) (*loanuc.LoanDTO, error)
}

type Keeper struct {
	loans Liquidator
	addr  common.Address
	batch int
	log   *zap.Logger
}

// New: addr is the account recorded as liquidator. Auction surplus is paid
// later to whoever calls ClaimAuction, which the keeper does not do.
func New(loans Liquidator, addr common.Address, batch int, log *zap.Logger) *Keeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Keeper{loans: loans, addr: addr, batch: batch, log: log}
}

type Result struct {
	Liquidated []uint64
	Failed     int
}

// Run liquidates one batch. A failing loan is logged and skipped.
func (k *Keeper) Run(ctx context.Context) (Result, error) {
	var res Result
	ids, err := k.loans.ListExpired(ctx, k.batch)
	if err != nil {
		return res, err
	}
	for _, id := range ids {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if _, err := k.loans.LiquidateCollateral(ctx, id, k.addr); err != nil {
			res.Failed++
			k.log.Warn("keeper: liquidation failed", zap.Uint64("loan_id", id), zap.Error(err))
			continue
		}
		res.Liquidated = append(res.Liquidated, id)
	}
	if len(ids) > 0 {
		k.log.Info("keeper: batch done",
			zap.Int("expired", len(ids)),
			zap.Int("liquidated", len(res.Liquidated)),
			zap.Int("failed", res.Failed))
	}
	return res, nil
}
