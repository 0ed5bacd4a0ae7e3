// Package asset models the fungible balance store loans are denominated in.
// Semantics follow ERC-20: TransferFrom spends the owner's allowance to the
// spender.
package asset

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance   = errors.New("ERC20: transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.New("ERC20: insufficient allowance")
	ErrNegativeAmount        = errors.New("ERC20: negative amount")
	ErrZeroAddress           = errors.New("ERC20: zero address")
)

type Balance struct {
	Holder    common.Address  `gorm:"primaryKey;column:holder;type:bytes;size:20"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(65,0);not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Balance) TableName() string { return "asset_balances" }

type Allowance struct {
	Owner     common.Address  `gorm:"primaryKey;column:owner;type:bytes;size:20"`
	Spender   common.Address  `gorm:"primaryKey;column:spender;type:bytes;size:20"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(65,0);not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Allowance) TableName() string { return "asset_allowances" }

type Ledger interface {
	BalanceOf(ctx context.Context, who common.Address) (decimal.Decimal, error)
	Allowance(ctx context.Context, owner, spender common.Address) (decimal.Decimal, error)
	Approve(ctx context.Context, owner, spender common.Address, amount decimal.Decimal) error
	Mint(ctx context.Context, to common.Address, amount decimal.Decimal) error
	// Transfer moves amount from the caller's own balance.
	Transfer(ctx context.Context, from, to common.Address, amount decimal.Decimal) error
	// TransferFrom moves amount from -> to, spending from's allowance to spender.
	TransferFrom(ctx context.Context, spender, from, to common.Address, amount decimal.Decimal) error
}
