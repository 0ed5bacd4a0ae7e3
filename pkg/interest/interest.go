// Package interest converts a principal and an annual rate into the amount
// owed at the end of a loan. Everything is integer arithmetic on decimals with
// zero scale; fractional units are floored.
package interest

import "github.com/shopspring/decimal"

// RateDenominator is the fixed-point scale of annual rates: 1500 means 15%.
const RateDenominator = 10000

var denominator = decimal.NewFromInt(RateDenominator)

// CalcAmountWithInterest returns principal + floor(principal*rate/RateDenominator).
func CalcAmountWithInterest(principal decimal.Decimal, annualRate uint32) decimal.Decimal {
	return principal.Add(Interest(principal, annualRate))
}

// Interest returns floor(principal*rate/RateDenominator). Negative principals
// are treated as zero.
func Interest(principal decimal.Decimal, annualRate uint32) decimal.Decimal {
	if !principal.IsPositive() || annualRate == 0 {
		return decimal.Zero
	}
	q, _ := principal.Mul(decimal.NewFromInt(int64(annualRate))).QuoRem(denominator, 0)
	return q.Floor()
}

// ProRata returns floor(pool*part/whole); zero when whole is not positive.
func ProRata(pool, part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() || !pool.IsPositive() || !part.IsPositive() {
		return decimal.Zero
	}
	q, _ := pool.Mul(part).QuoRem(whole, 0)
	return q.Floor()
}
