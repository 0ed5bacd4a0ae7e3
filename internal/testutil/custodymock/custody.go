// Package custodymock holds function-backed mocks for the custody
// collaborators: asset ledger, collateral registry and auction service.
// Unset functions return errUnimplemented, reads return zero values.
package custodymock

import (
	"context"
	"errors"

	"nft-lending-backend/internal/domain/asset"
	"nft-lending-backend/internal/domain/auction"
	"nft-lending-backend/internal/domain/collateral"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var errUnimplemented = errors.New("custodymock: method not implemented")

var (
	_ asset.Ledger        = (*Ledger)(nil)
	_ collateral.Registry = (*Registry)(nil)
	_ auction.Service     = (*Auctions)(nil)
)

type Ledger struct {
	BalanceOfFn    func(ctx context.Context, who common.Address) (decimal.Decimal, error)
	AllowanceFn    func(ctx context.Context, owner, spender common.Address) (decimal.Decimal, error)
	ApproveFn      func(ctx context.Context, owner, spender common.Address, amount decimal.Decimal) error
	MintFn         func(ctx context.Context, to common.Address, amount decimal.Decimal) error
	TransferFn     func(ctx context.Context, from, to common.Address, amount decimal.Decimal) error
	TransferFromFn func(ctx context.Context, spender, from, to common.Address, amount decimal.Decimal) error
}

func (m *Ledger) BalanceOf(ctx context.Context, who common.Address) (decimal.Decimal, error) {
	if m.BalanceOfFn != nil {
		return m.BalanceOfFn(ctx, who)
	}
	return decimal.Zero, nil
}
func (m *Ledger) Allowance(ctx context.Context, owner, spender common.Address) (decimal.Decimal, error) {
	if m.AllowanceFn != nil {
		return m.AllowanceFn(ctx, owner, spender)
	}
	return decimal.Zero, nil
}
func (m *Ledger) Approve(ctx context.Context, owner, spender common.Address, amount decimal.Decimal) error {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, owner, spender, amount)
	}
	return errUnimplemented
}
func (m *Ledger) Mint(ctx context.Context, to common.Address, amount decimal.Decimal) error {
	if m.MintFn != nil {
		return m.MintFn(ctx, to, amount)
	}
	return errUnimplemented
}
func (m *Ledger) Transfer(ctx context.Context, from, to common.Address, amount decimal.Decimal) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, from, to, amount)
	}
	return errUnimplemented
}
func (m *Ledger) TransferFrom(ctx context.Context, spender, from, to common.Address, amount decimal.Decimal) error {
	if m.TransferFromFn != nil {
		return m.TransferFromFn(ctx, spender, from, to, amount)
	}
	return errUnimplemented
}

type Registry struct {
	OwnerOfFn      func(ctx context.Context, ref collateral.Ref) (common.Address, error)
	GetApprovedFn  func(ctx context.Context, ref collateral.Ref) (common.Address, error)
	MintFn         func(ctx context.Context, registry, to common.Address, uri string) (collateral.Ref, error)
	ApproveFn      func(ctx context.Context, owner, operator common.Address, ref collateral.Ref) error
	TransferFromFn func(ctx context.Context, operator, from, to common.Address, ref collateral.Ref) error
}

func (m *Registry) OwnerOf(ctx context.Context, ref collateral.Ref) (common.Address, error) {
	if m.OwnerOfFn != nil {
		return m.OwnerOfFn(ctx, ref)
	}
	return common.Address{}, errUnimplemented
}
func (m *Registry) GetApproved(ctx context.Context, ref collateral.Ref) (common.Address, error) {
	if m.GetApprovedFn != nil {
		return m.GetApprovedFn(ctx, ref)
	}
	return common.Address{}, nil
}
func (m *Registry) Mint(ctx context.Context, registry, to common.Address, uri string) (collateral.Ref, error) {
	if m.MintFn != nil {
		return m.MintFn(ctx, registry, to, uri)
	}
	return collateral.Ref{}, errUnimplemented
}
func (m *Registry) Approve(ctx context.Context, owner, operator common.Address, ref collateral.Ref) error {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, owner, operator, ref)
	}
	return errUnimplemented
}
func (m *Registry) TransferFrom(ctx context.Context, operator, from, to common.Address, ref collateral.Ref) error {
	if m.TransferFromFn != nil {
		return m.TransferFromFn(ctx, operator, from, to, ref)
	}
	return errUnimplemented
}

type Auctions struct {
	Addr           common.Address
	StartAuctionFn func(ctx context.Context, seller common.Address, item collateral.Ref) (uint64, error)
	WinPriceFn     func(ctx context.Context, id uint64) (decimal.Decimal, error)
	FinishFn       func(ctx context.Context, id uint64, winner common.Address, price decimal.Decimal) error
}

func (m *Auctions) Address() common.Address { return m.Addr }
func (m *Auctions) StartAuction(ctx context.Context, seller common.Address, item collateral.Ref) (uint64, error) {
	if m.StartAuctionFn != nil {
		return m.StartAuctionFn(ctx, seller, item)
	}
	return 0, errUnimplemented
}
func (m *Auctions) WinPrice(ctx context.Context, id uint64) (decimal.Decimal, error) {
	if m.WinPriceFn != nil {
		return m.WinPriceFn(ctx, id)
	}
	return decimal.Zero, nil
}
func (m *Auctions) Finish(ctx context.Context, id uint64, winner common.Address, price decimal.Decimal) error {
	if m.FinishFn != nil {
		return m.FinishFn(ctx, id, winner, price)
	}
	return errUnimplemented
}
