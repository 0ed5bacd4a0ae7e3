package custodymock

import (
	"context"
	"errors"
	"testing"

	"nft-lending-backend/internal/domain/collateral"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

func TestLedger_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Ledger{}

	if b, err := m.BalanceOf(ctx, common.Address{}); err != nil || !b.IsZero() {
		t.Fatalf("BalanceOf default = %s, %v", b, err)
	}
	if err := m.Transfer(ctx, common.Address{}, common.Address{}, decimal.NewFromInt(1)); !errors.Is(err, errUnimplemented) {
		t.Fatalf("Transfer default: want errUnimplemented, got %v", err)
	}
	if err := m.TransferFrom(ctx, common.Address{}, common.Address{}, common.Address{}, decimal.NewFromInt(1)); !errors.Is(err, errUnimplemented) {
		t.Fatalf("TransferFrom default: want errUnimplemented, got %v", err)
	}
}

func TestLedger_ForwardsArgs(t *testing.T) {
	ctx := context.Background()
	to := common.HexToAddress("0x01")
	called := false
	m := &Ledger{
		MintFn: func(_ context.Context, gotTo common.Address, amount decimal.Decimal) error {
			called = true
			if gotTo != to || !amount.Equal(decimal.NewFromInt(5)) {
				t.Fatalf("Mint: args not forwarded")
			}
			return nil
		},
	}
	if err := m.Mint(ctx, to, decimal.NewFromInt(5)); err != nil || !called {
		t.Fatalf("Mint: err=%v called=%v", err, called)
	}
}

func TestRegistry_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Registry{}

	if _, err := m.OwnerOf(ctx, collateral.Ref{}); !errors.Is(err, errUnimplemented) {
		t.Fatalf("OwnerOf default: want errUnimplemented, got %v", err)
	}
	if a, err := m.GetApproved(ctx, collateral.Ref{}); err != nil || a != (common.Address{}) {
		t.Fatalf("GetApproved default = %s, %v", a.Hex(), err)
	}
}

func TestAuctions_Defaults(t *testing.T) {
	ctx := context.Background()
	addr := common.HexToAddress("0x02")
	m := &Auctions{Addr: addr}

	if m.Address() != addr {
		t.Fatalf("Address not returned")
	}
	if p, err := m.WinPrice(ctx, 1); err != nil || !p.IsZero() {
		t.Fatalf("WinPrice default = %s, %v", p, err)
	}
	if _, err := m.StartAuction(ctx, addr, collateral.Ref{}); !errors.Is(err, errUnimplemented) {
		t.Fatalf("StartAuction default: want errUnimplemented, got %v", err)
	}
}
