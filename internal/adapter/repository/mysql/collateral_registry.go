package mysql

import (
	"context"
	"errors"

	"nft-lending-backend/internal/domain/collateral"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollateralRegistry is a table-backed ERC-721 style registry. Several
// registries (collections) share the table, keyed by registry address.
type CollateralRegistry struct{ db *gorm.DB }

func NewCollateralRegistry(db *gorm.DB) *CollateralRegistry { return &CollateralRegistry{db: db} }

var _ collateral.Registry = (*CollateralRegistry)(nil)

func (r *CollateralRegistry) OwnerOf(ctx context.Context, ref collateral.Ref) (common.Address, error) {
	it, err := r.item(ctx, ref, false)
	if err != nil {
		return common.Address{}, err
	}
	return it.Owner, nil
}

func (r *CollateralRegistry) GetApproved(ctx context.Context, ref collateral.Ref) (common.Address, error) {
	it, err := r.item(ctx, ref, false)
	if err != nil {
		return common.Address{}, err
	}
	return it.Approved, nil
}

// Mint assigns the next sequential id within the registry.
func (r *CollateralRegistry) Mint(ctx context.Context, registry, to common.Address, uri string) (collateral.Ref, error) {
	if to == (common.Address{}) || registry == (common.Address{}) {
		return collateral.Ref{}, collateral.ErrZeroAddress
	}
	var last []collateral.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("registry = ?", registry).
		Order("item_id DESC").
		Limit(1).
		Find(&last).Error; err != nil {
		return collateral.Ref{}, err
	}
	next := uint64(1)
	if len(last) > 0 {
		next = last[0].ItemID + 1
	}
	it := &collateral.Item{Registry: registry, ItemID: next, Owner: to, URI: uri}
	if err := r.db.WithContext(ctx).Create(it).Error; err != nil {
		return collateral.Ref{}, err
	}
	return it.Ref(), nil
}

func (r *CollateralRegistry) Approve(ctx context.Context, owner, operator common.Address, ref collateral.Ref) error {
	it, err := r.item(ctx, ref, true)
	if err != nil {
		return err
	}
	if it.Owner != owner {
		return collateral.ErrNotOwnerNorApproved
	}
	if operator == owner {
		return collateral.ErrApproveToOwner
	}
	it.Approved = operator
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *CollateralRegistry) TransferFrom(ctx context.Context, operator, from, to common.Address, ref collateral.Ref) error {
	it, err := r.item(ctx, ref, true)
	if err != nil {
		return err
	}
	if !it.CanTransfer(operator) {
		return collateral.ErrNotOwnerNorApproved
	}
	if it.Owner != from {
		return collateral.ErrWrongOwner
	}
	if to == (common.Address{}) {
		return collateral.ErrZeroAddress
	}
	it.Owner = to
	it.Approved = common.Address{}
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *CollateralRegistry) item(ctx context.Context, ref collateral.Ref, lock bool) (*collateral.Item, error) {
	var it collateral.Item
	q := r.db.WithContext(ctx).Where("registry = ? AND item_id = ?", ref.Registry, ref.ItemID)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&it).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, collateral.ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}
