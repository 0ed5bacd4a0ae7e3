package auction

import (
	"context"
	"errors"
	"testing"

	auctionDomain "nft-lending-backend/internal/domain/auction"
	"nft-lending-backend/internal/domain/collateral"
	"nft-lending-backend/internal/testutil/custodymock"
	"nft-lending-backend/internal/usecase/escrow"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	custody = common.HexToAddress("0x1000000000000000000000000000000000000001")
	house   = common.HexToAddress("0x2000000000000000000000000000000000000002")
	item    = collateral.Ref{Registry: common.HexToAddress("0x3000000000000000000000000000000000000003"), ItemID: 4}
)

func TestStart_ReleasesThenLists(t *testing.T) {
	var order []string
	items := &custodymock.Registry{
		TransferFromFn: func(_ context.Context, operator, from, to common.Address, ref collateral.Ref) error {
			assert.Equal(t, custody, operator)
			assert.Equal(t, custody, from)
			assert.Equal(t, house, to)
			order = append(order, "release")
			return nil
		},
	}
	svc := &custodymock.Auctions{
		Addr: house,
		StartAuctionFn: func(_ context.Context, seller common.Address, ref collateral.Ref) (uint64, error) {
			assert.Equal(t, custody, seller)
			assert.Equal(t, item, ref)
			order = append(order, "list")
			return 11, nil
		},
	}
	b := NewBridge(escrow.New(custody, &custodymock.Ledger{}, items), svc)

	id, err := b.Start(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), id)
	assert.Equal(t, []string{"release", "list"}, order)
}

func TestStart_ReleaseFailureSkipsListing(t *testing.T) {
	items := &custodymock.Registry{
		TransferFromFn: func(context.Context, common.Address, common.Address, common.Address, collateral.Ref) error {
			return collateral.ErrWrongOwner
		},
	}
	svc := &custodymock.Auctions{
		Addr: house,
		StartAuctionFn: func(context.Context, common.Address, collateral.Ref) (uint64, error) {
			t.Fatal("StartAuction must not be called")
			return 0, nil
		},
	}
	b := NewBridge(escrow.New(custody, &custodymock.Ledger{}, items), svc)

	_, err := b.Start(context.Background(), item)
	assert.ErrorIs(t, err, collateral.ErrWrongOwner)
}

func TestSettledPrice(t *testing.T) {
	price := decimal.Zero
	svc := &custodymock.Auctions{
		WinPriceFn: func(context.Context, uint64) (decimal.Decimal, error) { return price, nil },
	}
	b := NewBridge(escrow.New(custody, &custodymock.Ledger{}, &custodymock.Registry{}), svc)

	_, settled, err := b.SettledPrice(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, settled)

	price = decimal.NewFromInt(125)
	got, settled, err := b.SettledPrice(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, settled)
	assert.True(t, got.Equal(price))
}

func TestSettledPrice_Error(t *testing.T) {
	svc := &custodymock.Auctions{
		WinPriceFn: func(context.Context, uint64) (decimal.Decimal, error) {
			return decimal.Zero, auctionDomain.ErrAuctionNotFound
		},
	}
	b := NewBridge(escrow.New(custody, &custodymock.Ledger{}, &custodymock.Registry{}), svc)

	_, _, err := b.SettledPrice(context.Background(), 9)
	assert.True(t, errors.Is(err, auctionDomain.ErrAuctionNotFound))
}
