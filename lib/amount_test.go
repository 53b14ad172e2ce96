package lib

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuoteAmountOut(t *testing.T) {
	e24 := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)
	tests := []struct {
		name      string
		detail    string
		amountIn  *big.Int
		reserveIn *big.Int
		reserveOt *big.Int
		expected  *big.Int
	}{
		{
			name:      "small integers",
			detail:    "floor(1*997*300 / (100*1000 + 997)) = 2",
			amountIn:  NewAmount(1),
			reserveIn: NewAmount(100),
			reserveOt: NewAmount(300),
			expected:  NewAmount(2),
		},
		{
			name:      "zero in",
			detail:    "a zero input prices to a zero output",
			amountIn:  NewAmount(0),
			reserveIn: NewAmount(100),
			reserveOt: NewAmount(300),
			expected:  NewAmount(0),
		},
		{
			name:      "flooring",
			detail:    "the division truncates toward zero, never rounds up",
			amountIn:  NewAmount(1),
			reserveIn: NewAmount(1000),
			reserveOt: NewAmount(1000),
			expected:  NewAmount(0),
		},
		{
			name:      "24 decimal magnitudes",
			detail:    "intermediate products above 2^128 must not truncate",
			amountIn:  new(big.Int).Mul(NewAmount(1), e24),
			reserveIn: new(big.Int).Mul(NewAmount(100), e24),
			reserveOt: new(big.Int).Mul(NewAmount(300), e24),
			expected: func() *big.Int {
				// computed independently of the implementation
				fee := new(big.Int).Mul(new(big.Int).Mul(NewAmount(1), e24), big.NewInt(997))
				num := new(big.Int).Mul(fee, new(big.Int).Mul(NewAmount(300), e24))
				den := new(big.Int).Mul(new(big.Int).Mul(NewAmount(100), e24), big.NewInt(1000))
				return num.Div(num, den.Add(den, fee))
			}(),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := QuoteAmountOut(test.amountIn, test.reserveIn, test.reserveOt)
			require.Zero(t, test.expected.Cmp(got), "expected %s got %s", test.expected, got)
			// the quote is deterministic and does not mutate its inputs
			require.Zero(t, got.Cmp(QuoteAmountOut(test.amountIn, test.reserveIn, test.reserveOt)))
		})
	}
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		amount *big.Int
		error  ErrorCode
	}{
		{
			name:   "zero",
			detail: "zero is a valid balance",
			amount: NewAmount(0),
		},
		{
			name:   "max",
			detail: "2^128-1 is the largest valid balance",
			amount: new(big.Int).Set(MaxAmount),
		},
		{
			name:   "nil",
			detail: "a nil amount is invalid",
			amount: nil,
			error:  CodeInvalidAmount,
		},
		{
			name:   "negative",
			detail: "balances are unsigned",
			amount: big.NewInt(-1),
			error:  CodeInvalidAmount,
		},
		{
			name:   "overflow",
			detail: "2^128 exceeds the balance range",
			amount: new(big.Int).Add(MaxAmount, big.NewInt(1)),
			error:  CodeAmountOverflow,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := CheckAmount(test.amount)
			if test.error != 0 {
				require.Error(t, err)
				require.Equal(t, test.error, err.Code())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAmountBytes(t *testing.T) {
	// storage bytes round-trip, and an absent record reads as zero
	a := new(big.Int).Set(MaxAmount)
	require.Equal(t, a, AmountFromBytes(AmountToBytes(a)))
	require.Zero(t, AmountFromBytes(nil).Sign())
	require.Zero(t, AmountFromBytes(AmountToBytes(NewAmount(0))).Sign())
}

func TestAmountString(t *testing.T) {
	a, err := AmountFromString("340282366920938463463374607431768211455")
	require.NoError(t, err)
	require.Equal(t, MaxAmount, a)
	require.Equal(t, "340282366920938463463374607431768211455", AmountToString(a))
	// out-of-range and malformed strings are rejected
	_, err = AmountFromString("340282366920938463463374607431768211456")
	require.Error(t, err)
	require.Equal(t, CodeAmountOverflow, err.Code())
	_, err = AmountFromString("not a number")
	require.Error(t, err)
	require.Equal(t, CodeInvalidAmount, err.Code())
	_, err = AmountFromString("-1")
	require.Error(t, err)
	require.Equal(t, CodeInvalidAmount, err.Code())
	require.Equal(t, "0", AmountToString(nil))
}
