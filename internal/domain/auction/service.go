// Package auction models the price-discovery service that sells liquidated
// collateral. The lending registry only starts auctions and reads the win
// price; settlement moves funds and the item on its own.
package auction

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/domain/collateral"
)

var (
	ErrAuctionNotFound = errors.New("AUCTION_NOT_FOUND")
	ErrAuctionClosed   = errors.New("AUCTION_ALREADY_FINISHED")
	ErrZeroPrice       = errors.New("AUCTION_ZERO_PRICE")
	ErrNotItemHolder   = errors.New("AUCTION_NOT_ITEM_HOLDER")
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusSettled Status = "settled"
)

type Auction struct {
	ID        uint64          `gorm:"primaryKey;column:id;autoIncrement" json:"auction_id"`
	Seller    common.Address  `gorm:"column:seller;type:bytes;size:20;not null" json:"seller"`
	Registry  common.Address  `gorm:"column:registry;type:bytes;size:20;not null" json:"registry"`
	ItemID    uint64          `gorm:"column:item_id;not null" json:"item_id"`
	Status    Status          `gorm:"column:status;type:varchar(16);not null" json:"status"`
	WinPrice  decimal.Decimal `gorm:"column:win_price;type:decimal(65,0);not null" json:"win_price"`
	Winner    common.Address  `gorm:"column:winner;type:bytes;size:20;not null" json:"winner"`
	SettledAt *time.Time      `gorm:"column:settled_at" json:"settled_at,omitempty"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Auction) TableName() string { return "auctions" }

func (a *Auction) Item() collateral.Ref { return collateral.Ref{Registry: a.Registry, ItemID: a.ItemID} }

type Service interface {
	// Address is the account that must hold an item before it is auctioned.
	Address() common.Address
	StartAuction(ctx context.Context, seller common.Address, item collateral.Ref) (uint64, error)
	// WinPrice is zero until the auction settles.
	WinPrice(ctx context.Context, id uint64) (decimal.Decimal, error)
	// Finish settles: price moves winner -> seller, item moves to winner.
	Finish(ctx context.Context, id uint64, winner common.Address, price decimal.Decimal) error
}
