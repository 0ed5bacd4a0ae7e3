package mysql

import (
	"context"
	"errors"
	"testing"

	"nft-lending-backend/internal/domain/asset"

	"github.com/ethereum/go-ethereum/common"
)

func TestAssetLedger_MintAndTransfer(t *testing.T) {
	db := openTestDB(t)
	l := NewAssetLedger(db)
	ctx := context.Background()

	if err := l.Mint(ctx, lender1, tokens(1000)); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := l.Mint(ctx, lender1, tokens(1)); err != nil {
		t.Fatalf("second Mint: %v", err)
	}
	if got := mustBalance(t, l, lender1); !got.Equal(tokens(1001)) {
		t.Fatalf("balance = %s", got)
	}

	if err := l.Transfer(ctx, lender1, lender2, tokens(400)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if got := mustBalance(t, l, lender1); !got.Equal(tokens(601)) {
		t.Errorf("sender balance = %s", got)
	}
	if got := mustBalance(t, l, lender2); !got.Equal(tokens(400)) {
		t.Errorf("receiver balance = %s", got)
	}

	if err := l.Transfer(ctx, lender2, lender1, tokens(401)); !errors.Is(err, asset.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestAssetLedger_UnknownHolderIsZero(t *testing.T) {
	db := openTestDB(t)
	l := NewAssetLedger(db)

	if got := mustBalance(t, l, winner); !got.IsZero() {
		t.Fatalf("balance = %s, want 0", got)
	}
}

func TestAssetLedger_RejectsBadInput(t *testing.T) {
	db := openTestDB(t)
	l := NewAssetLedger(db)
	ctx := context.Background()

	if err := l.Mint(ctx, lender1, units(-1)); !errors.Is(err, asset.ErrNegativeAmount) {
		t.Errorf("negative mint: %v", err)
	}
	if err := l.Mint(ctx, common.Address{}, units(1)); !errors.Is(err, asset.ErrZeroAddress) {
		t.Errorf("mint to zero address: %v", err)
	}
	if err := l.Approve(ctx, lender1, common.Address{}, units(1)); !errors.Is(err, asset.ErrZeroAddress) {
		t.Errorf("approve zero spender: %v", err)
	}
}

func TestAssetLedger_TransferFromConsumesAllowance(t *testing.T) {
	db := openTestDB(t)
	l := NewAssetLedger(db)
	ctx := context.Background()

	if err := l.Mint(ctx, lender1, units(100)); err != nil {
		t.Fatal(err)
	}

	if err := l.TransferFrom(ctx, custodyAddr, lender1, custodyAddr, units(10)); !errors.Is(err, asset.ErrInsufficientAllowance) {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}

	if err := l.Approve(ctx, lender1, custodyAddr, units(30)); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := l.TransferFrom(ctx, custodyAddr, lender1, custodyAddr, units(25)); err != nil {
		t.Fatalf("TransferFrom: %v", err)
	}
	left, err := l.Allowance(ctx, lender1, custodyAddr)
	if err != nil {
		t.Fatalf("Allowance: %v", err)
	}
	if !left.Equal(units(5)) {
		t.Fatalf("allowance = %s, want 5", left)
	}
	if got := mustBalance(t, l, custodyAddr); !got.Equal(units(25)) {
		t.Fatalf("custody balance = %s", got)
	}

	// approve overwrites rather than adds
	if err := l.Approve(ctx, lender1, custodyAddr, units(2)); err != nil {
		t.Fatal(err)
	}
	left, _ = l.Allowance(ctx, lender1, custodyAddr)
	if !left.Equal(units(2)) {
		t.Fatalf("allowance after re-approve = %s, want 2", left)
	}
}

func TestAssetLedger_TransferFromSelfNeedsNoAllowance(t *testing.T) {
	db := openTestDB(t)
	l := NewAssetLedger(db)
	ctx := context.Background()

	if err := l.Mint(ctx, custodyAddr, units(50)); err != nil {
		t.Fatal(err)
	}
	if err := l.TransferFrom(ctx, custodyAddr, custodyAddr, lender2, units(50)); err != nil {
		t.Fatalf("TransferFrom self: %v", err)
	}
	if got := mustBalance(t, l, lender2); !got.Equal(units(50)) {
		t.Fatalf("balance = %s", got)
	}
}
