package participation

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"nft-lending-backend/internal/domain/loan"
)

// Ledger is a read view over one loan's live participations.
type Ledger struct {
	entries []Participation
}

func NewLedger(entries []Participation) Ledger { return Ledger{entries: entries} }

func (l Ledger) Len() int { return len(l.entries) }

func (l Ledger) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		sum = sum.Add(e.Principal)
	}
	return sum
}

func (l Ledger) Find(lender common.Address) (*Participation, bool) {
	for i := range l.entries {
		if l.entries[i].Lender == lender {
			return &l.entries[i], true
		}
	}
	return nil, false
}

// AmountOf is the lender's committed principal, zero when absent.
func (l Ledger) AmountOf(lender common.Address) decimal.Decimal {
	if p, ok := l.Find(lender); ok {
		return p.Principal
	}
	return decimal.Zero
}

func (l Ledger) Lenders() []common.Address {
	out := make([]common.Address, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Lender)
	}
	return out
}

// CheckUpdate validates moving lender's commitment to amount under the funding
// cap and returns the signed delta (positive pulls funds in, negative refunds).
func (l Ledger) CheckUpdate(limit decimal.Decimal, lender common.Address, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, loan.ErrZeroAmount
	}
	if !amount.IsInteger() {
		return decimal.Zero, loan.ErrFractionalAmount
	}
	current := l.AmountOf(lender)
	if amount.Equal(current) {
		return decimal.Zero, loan.ErrSameAmount
	}
	others := l.Total().Sub(current)
	if others.Add(amount).GreaterThan(limit) {
		return decimal.Zero, loan.ErrExceedsLoanAmount
	}
	return amount.Sub(current), nil
}

// IsLast reports whether lender holds the only remaining entry.
func (l Ledger) IsLast(lender common.Address) bool {
	return len(l.entries) == 1 && l.entries[0].Lender == lender
}
