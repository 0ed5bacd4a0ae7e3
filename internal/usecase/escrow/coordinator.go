// Package escrow moves collateral and funds between participants and the
// custody account. A Coordinator is bound to the collaborators of one
// transaction; it never decides whether a move is allowed, the loan registry
// does that before calling in.
package escrow

import (
	"context"
	"fmt"

	"nft-lending-backend/internal/domain/asset"
	"nft-lending-backend/internal/domain/collateral"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type Coordinator struct {
	custody common.Address
	assets  asset.Ledger
	items   collateral.Registry
}

func New(custody common.Address, assets asset.Ledger, items collateral.Registry) *Coordinator {
	return &Coordinator{custody: custody, assets: assets, items: items}
}

func (c *Coordinator) Custody() common.Address { return c.custody }

// LockCollateral pulls ref from owner into custody. owner must have approved
// the custody account on the registry.
func (c *Coordinator) LockCollateral(ctx context.Context, owner common.Address, ref collateral.Ref) error {
	if err := c.items.TransferFrom(ctx, c.custody, owner, c.custody, ref); err != nil {
		return fmt.Errorf("lock collateral %s: %w", ref, err)
	}
	return nil
}

func (c *Coordinator) ReleaseCollateral(ctx context.Context, to common.Address, ref collateral.Ref) error {
	if err := c.items.TransferFrom(ctx, c.custody, c.custody, to, ref); err != nil {
		return fmt.Errorf("release collateral %s: %w", ref, err)
	}
	return nil
}

// Deposit pulls amount from the payer, spending its allowance to custody.
func (c *Coordinator) Deposit(ctx context.Context, from common.Address, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	if err := c.assets.TransferFrom(ctx, c.custody, from, c.custody, amount); err != nil {
		return fmt.Errorf("deposit %s from %s: %w", amount, from.Hex(), err)
	}
	return nil
}

func (c *Coordinator) Payout(ctx context.Context, to common.Address, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	if err := c.assets.Transfer(ctx, c.custody, to, amount); err != nil {
		return fmt.Errorf("payout %s to %s: %w", amount, to.Hex(), err)
	}
	return nil
}
