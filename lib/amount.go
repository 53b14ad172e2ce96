package lib

import (
	"math/big"
)

/*
	This file implements the 128-bit unsigned balance arithmetic used by the ledger and the
	market engine. Balances and reserves are carried as *big.Int so that 24-decimal asset
	magnitudes (order 1e24) fit, and so that the constant-product quote can run its
	intermediate products above 2^128 without truncation.
*/

var (
	// MaxAmount is the largest storable balance: 2^128 - 1
	MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	// swap fee is 0.3%: amounts in are scaled by 997/1000
	feeMultiplier  = big.NewInt(997)
	feeDenominator = big.NewInt(1000)
)

// NewAmount() converts a uint64 into a balance amount
func NewAmount(u uint64) *big.Int { return new(big.Int).SetUint64(u) }

// AmountFromBytes() converts stored big-endian bytes into a balance amount; empty bytes read as zero
func AmountFromBytes(bz []byte) *big.Int { return new(big.Int).SetBytes(bz) }

// AmountToBytes() converts a balance amount into big-endian bytes for storage
func AmountToBytes(a *big.Int) []byte { return a.Bytes() }

// AmountFromString() converts a base-10 string into a balance amount, enforcing the balance range
func AmountFromString(s string) (*big.Int, ErrorI) {
	a, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, ErrInvalidAmount(s)
	}
	if err := CheckAmount(a); err != nil {
		return nil, err
	}
	return a, nil
}

// AmountToString() converts a balance amount into its base-10 string
func AmountToString(a *big.Int) string {
	if a == nil {
		return "0"
	}
	return a.String()
}

// CheckAmount() ensures an amount is a valid 128-bit unsigned balance
func CheckAmount(a *big.Int) ErrorI {
	if a == nil || a.Sign() < 0 {
		return ErrInvalidAmount(AmountToString(a))
	}
	if a.Cmp(MaxAmount) > 0 {
		return ErrAmountOverflow()
	}
	return nil
}

// QuoteAmountOut() executes the overflow protected uniswap V2 formula:
//
//	amountOut = (amountIn * 997 * reserveOut) / (reserveIn * 1000 + amountIn * 997)
//
// integer flooring; the caller must ensure reserveIn > 0 so the denominator is non-zero
func QuoteAmountOut(amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	// amountInWithFee = amountIn * 997
	amountInWithFee := new(big.Int).Mul(amountIn, feeMultiplier)
	// numerator = amountInWithFee * reserveOut
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	// denominator = reserveIn * 1000 + amountInWithFee
	denominator := new(big.Int).Mul(reserveIn, feeDenominator)
	denominator.Add(denominator, amountInWithFee)
	// amountOut = numerator / denominator
	return new(big.Int).Div(numerator, denominator)
}
