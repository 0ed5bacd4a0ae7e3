// Package auction hands liquidated collateral to the auction service and reads
// back the result.
package auction

import (
	"context"
	"fmt"

	auctionDomain "nft-lending-backend/internal/domain/auction"
	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/usecase/escrow"

	"github.com/shopspring/decimal"
)

type Bridge struct {
	escrow *escrow.Coordinator
	svc    auctionDomain.Service
}

func NewBridge(esc *escrow.Coordinator, svc auctionDomain.Service) *Bridge {
	return &Bridge{escrow: esc, svc: svc}
}

// Start moves ref out of custody to the auction house and lists it with the
// custody account as seller, so the proceeds land back in custody.
func (b *Bridge) Start(ctx context.Context, ref collateral.Ref) (uint64, error) {
	if err := b.escrow.ReleaseCollateral(ctx, b.svc.Address(), ref); err != nil {
		return 0, err
	}
	id, err := b.svc.StartAuction(ctx, b.escrow.Custody(), ref)
	if err != nil {
		return 0, fmt.Errorf("start auction for %s: %w", ref, err)
	}
	return id, nil
}

// SettledPrice reports the winning price; settled is false while the price is zero.
func (b *Bridge) SettledPrice(ctx context.Context, auctionID uint64) (price decimal.Decimal, settled bool, err error) {
	price, err = b.svc.WinPrice(ctx, auctionID)
	if err != nil {
		return decimal.Zero, false, err
	}
	return price, price.IsPositive(), nil
}
