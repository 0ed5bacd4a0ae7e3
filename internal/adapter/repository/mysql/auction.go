package mysql

import (
	"context"
	"errors"
	"time"

	"nft-lending-backend/internal/domain/asset"
	"nft-lending-backend/internal/domain/auction"
	"nft-lending-backend/internal/domain/collateral"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuctionService is a settle-by-operator auction house: an item handed to
// Address() is listed, and Finish records the winning bid, pulls the price from
// the winner (who must have approved Address() on the asset ledger) into the
// seller's account and delivers the item.
type AuctionService struct {
	db     *gorm.DB
	addr   common.Address
	assets asset.Ledger
	items  collateral.Registry
}

func NewAuctionService(db *gorm.DB, addr common.Address, assets asset.Ledger, items collateral.Registry) *AuctionService {
	return &AuctionService{db: db, addr: addr, assets: assets, items: items}
}

var _ auction.Service = (*AuctionService)(nil)

func (s *AuctionService) Address() common.Address { return s.addr }

func (s *AuctionService) StartAuction(ctx context.Context, seller common.Address, item collateral.Ref) (uint64, error) {
	owner, err := s.items.OwnerOf(ctx, item)
	if err != nil {
		return 0, err
	}
	if owner != s.addr {
		return 0, auction.ErrNotItemHolder
	}
	a := &auction.Auction{
		Seller:   seller,
		Registry: item.Registry,
		ItemID:   item.ItemID,
		Status:   auction.StatusOpen,
		WinPrice: decimal.Zero,
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (s *AuctionService) WinPrice(ctx context.Context, id uint64) (decimal.Decimal, error) {
	a, err := s.get(ctx, id, false)
	if err != nil {
		return decimal.Zero, err
	}
	if a.Status != auction.StatusSettled {
		return decimal.Zero, nil
	}
	return a.WinPrice, nil
}

func (s *AuctionService) Get(ctx context.Context, id uint64) (*auction.Auction, error) {
	return s.get(ctx, id, false)
}

func (s *AuctionService) Finish(ctx context.Context, id uint64, winner common.Address, price decimal.Decimal) error {
	a, err := s.get(ctx, id, true)
	if err != nil {
		return err
	}
	if a.Status != auction.StatusOpen {
		return auction.ErrAuctionClosed
	}
	if !price.IsPositive() {
		return auction.ErrZeroPrice
	}

	now := time.Now().UTC()
	a.Status = auction.StatusSettled
	a.WinPrice = price
	a.Winner = winner
	a.SettledAt = &now
	if err := s.db.WithContext(ctx).Save(a).Error; err != nil {
		return err
	}

	if err := s.assets.TransferFrom(ctx, s.addr, winner, a.Seller, price); err != nil {
		return err
	}
	return s.items.TransferFrom(ctx, s.addr, s.addr, winner, a.Item())
}

func (s *AuctionService) get(ctx context.Context, id uint64, lock bool) (*auction.Auction, error) {
	var a auction.Auction
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auction.ErrAuctionNotFound
		}
		return nil, err
	}
	return &a, nil
}
