// Package collateral models the unique-item registry that holds loan
// collateral. Semantics follow ERC-721: one owner per item, at most one
// approved operator, approval cleared on every transfer.
package collateral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrItemNotFound        = errors.New("ERC721: operator query for nonexistent token")
	ErrNotOwnerNorApproved = errors.New("ERC721: transfer caller is not owner nor approved")
	ErrWrongOwner          = errors.New("ERC721: transfer from incorrect owner")
	ErrApproveToOwner      = errors.New("ERC721: approval to current owner")
	ErrZeroAddress         = errors.New("ERC721: zero address")
)

// Ref identifies an item: the registry it lives in plus its id there.
type Ref struct {
	Registry common.Address `json:"registry"`
	ItemID   uint64         `json:"item_id"`
}

func (r Ref) String() string { return fmt.Sprintf("%s#%d", r.Registry.Hex(), r.ItemID) }

type Item struct {
	ID        uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	Registry  common.Address `gorm:"column:registry;type:bytes;size:20;not null;uniqueIndex:ux_collateral_items_ref"`
	ItemID    uint64         `gorm:"column:item_id;not null;uniqueIndex:ux_collateral_items_ref"`
	Owner     common.Address `gorm:"column:owner;type:bytes;size:20;not null;index"`
	Approved  common.Address `gorm:"column:approved;type:bytes;size:20;not null"`
	URI       string         `gorm:"column:uri;type:text"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Item) TableName() string { return "collateral_items" }

func (i *Item) Ref() Ref { return Ref{Registry: i.Registry, ItemID: i.ItemID} }

// CanTransfer reports whether operator may move the item on the owner's behalf.
func (i *Item) CanTransfer(operator common.Address) bool {
	return operator == i.Owner || (i.Approved != (common.Address{}) && operator == i.Approved)
}

type Registry interface {
	// OwnerOf fails with ErrItemNotFound for items that were never minted.
	OwnerOf(ctx context.Context, ref Ref) (common.Address, error)
	GetApproved(ctx context.Context, ref Ref) (common.Address, error)
	Mint(ctx context.Context, registry, to common.Address, uri string) (Ref, error)
	Approve(ctx context.Context, owner, operator common.Address, ref Ref) error
	// TransferFrom moves ref from -> to, performed by operator.
	TransferFrom(ctx context.Context, operator, from, to common.Address, ref Ref) error
}
