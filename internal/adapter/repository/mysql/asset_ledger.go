package mysql

import (
	"context"

	"nft-lending-backend/internal/domain/asset"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetLedger is a table-backed ERC-20 style balance store. Bound to the same
// transaction as the loan tables, its transfers commit or roll back together
// with the loan state that caused them.
type AssetLedger struct{ db *gorm.DB }

func NewAssetLedger(db *gorm.DB) *AssetLedger { return &AssetLedger{db: db} }

var _ asset.Ledger = (*AssetLedger)(nil)

func (l *AssetLedger) BalanceOf(ctx context.Context, who common.Address) (decimal.Decimal, error) {
	b, err := l.balance(ctx, who, false)
	return b.Amount, err
}

func (l *AssetLedger) Allowance(ctx context.Context, owner, spender common.Address) (decimal.Decimal, error) {
	a, err := l.allowance(ctx, owner, spender, false)
	return a.Amount, err
}

func (l *AssetLedger) Approve(ctx context.Context, owner, spender common.Address, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return asset.ErrNegativeAmount
	}
	if owner == (common.Address{}) || spender == (common.Address{}) {
		return asset.ErrZeroAddress
	}
	return l.putAllowance(ctx, asset.Allowance{Owner: owner, Spender: spender, Amount: amount})
}

func (l *AssetLedger) Mint(ctx context.Context, to common.Address, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return asset.ErrNegativeAmount
	}
	if to == (common.Address{}) {
		return asset.ErrZeroAddress
	}
	b, err := l.balance(ctx, to, true)
	if err != nil {
		return err
	}
	b.Amount = b.Amount.Add(amount)
	return l.putBalance(ctx, b)
}

func (l *AssetLedger) Transfer(ctx context.Context, from, to common.Address, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return asset.ErrNegativeAmount
	}
	if to == (common.Address{}) {
		return asset.ErrZeroAddress
	}
	src, err := l.balance(ctx, from, true)
	if err != nil {
		return err
	}
	if src.Amount.LessThan(amount) {
		return asset.ErrInsufficientBalance
	}
	if amount.IsZero() || from == to {
		return nil
	}
	dst, err := l.balance(ctx, to, true)
	if err != nil {
		return err
	}
	src.Amount = src.Amount.Sub(amount)
	dst.Amount = dst.Amount.Add(amount)
	if err := l.putBalance(ctx, src); err != nil {
		return err
	}
	return l.putBalance(ctx, dst)
}

func (l *AssetLedger) TransferFrom(ctx context.Context, spender, from, to common.Address, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return asset.ErrNegativeAmount
	}
	if spender != from {
		a, err := l.allowance(ctx, from, spender, true)
		if err != nil {
			return err
		}
		if a.Amount.LessThan(amount) {
			return asset.ErrInsufficientAllowance
		}
		a.Amount = a.Amount.Sub(amount)
		if err := l.putAllowance(ctx, a); err != nil {
			return err
		}
	}
	return l.Transfer(ctx, from, to, amount)
}

func (l *AssetLedger) balance(ctx context.Context, who common.Address, lock bool) (asset.Balance, error) {
	var rows []asset.Balance
	q := l.db.WithContext(ctx).Where("holder = ?", who).Limit(1)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Find(&rows).Error; err != nil {
		return asset.Balance{}, err
	}
	if len(rows) == 0 {
		return asset.Balance{Holder: who, Amount: decimal.Zero}, nil
	}
	return rows[0], nil
}

func (l *AssetLedger) allowance(ctx context.Context, owner, spender common.Address, lock bool) (asset.Allowance, error) {
	var rows []asset.Allowance
	q := l.db.WithContext(ctx).Where("owner = ? AND spender = ?", owner, spender).Limit(1)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Find(&rows).Error; err != nil {
		return asset.Allowance{}, err
	}
	if len(rows) == 0 {
		return asset.Allowance{Owner: owner, Spender: spender, Amount: decimal.Zero}, nil
	}
	return rows[0], nil
}

func (l *AssetLedger) putBalance(ctx context.Context, b asset.Balance) error {
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "holder"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&b).Error
}

func (l *AssetLedger) putAllowance(ctx context.Context, a asset.Allowance) error {
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "spender"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&a).Error
}
