package fsm

import (
	"math/big"
	"testing"

	"github.com/rockpool-network/rockpool/lib"
	"github.com/stretchr/testify/require"
)

func TestDepositDefaultsToZero(t *testing.T) {
	// a pair never credited reads as zero, repeatedly
	sm, _, _, asset0, _ := newTestPool(t)
	account := newTestAddress(t, 9)
	for i := 0; i < 3; i++ {
		balance, err := sm.GetDeposit(asset0, account)
		require.NoError(t, err)
		require.Zero(t, balance.Sign())
	}
}

func TestDepositAddSub(t *testing.T) {
	tests := []struct {
		name    string
		detail  string
		credits []uint64
		debits  []uint64
		balance uint64
		error   lib.ErrorCode
	}{
		{
			name:    "credit then debit",
			detail:  "a debit within the credited balance leaves the difference",
			credits: []uint64{100},
			debits:  []uint64{40},
			balance: 60,
		},
		{
			name:    "zero credit",
			detail:  "crediting zero always succeeds and leaves the balance unchanged",
			credits: []uint64{0},
			debits:  nil,
			balance: 0,
		},
		{
			name:    "debit to exactly zero",
			detail:  "the entry persists at zero and still reads as zero",
			credits: []uint64{25},
			debits:  []uint64{25},
			balance: 0,
		},
		{
			name:    "debit beyond balance",
			detail:  "a debit exceeding the balance is rejected, never clamped",
			credits: []uint64{10},
			debits:  []uint64{11},
			balance: 10,
			error:   lib.CodeInsufficientDeposit,
		},
		{
			name:    "debit with no entry",
			detail:  "a debit against an account that was never credited is rejected",
			credits: nil,
			debits:  []uint64{1},
			balance: 0,
			error:   lib.CodeInsufficientDeposit,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm, _, _, asset0, _ := newTestPool(t)
			account := newTestAddress(t, 9)
			for _, amount := range test.credits {
				require.NoError(t, sm.DepositAdd(account, asset0, lib.NewAmount(amount)))
			}
			var gotErr lib.ErrorI
			for _, amount := range test.debits {
				if gotErr = sm.DepositSub(account, asset0, lib.NewAmount(amount)); gotErr != nil {
					break
				}
			}
			if test.error != 0 {
				require.Error(t, gotErr)
				require.Equal(t, test.error, gotErr.Code())
			} else {
				require.NoError(t, gotErr)
			}
			// a failed debit must not mutate the balance
			balance, err := sm.GetDeposit(asset0, account)
			require.NoError(t, err)
			require.Equal(t, lib.NewAmount(test.balance), balance)
		})
	}
}

func TestDepositUnknownAsset(t *testing.T) {
	// an unrecognized asset rejects before any mutation, on every ledger operation
	sm, _, _, _, _ := newTestPool(t)
	unknown, account := newTestAddress(t, 77), newTestAddress(t, 9)
	_, err := sm.GetDeposit(unknown, account)
	require.Error(t, err)
	require.Equal(t, lib.CodeUnknownAsset, err.Code())
	err = sm.DepositAdd(account, unknown, lib.NewAmount(1))
	require.Error(t, err)
	require.Equal(t, lib.CodeUnknownAsset, err.Code())
	err = sm.DepositSub(account, unknown, lib.NewAmount(1))
	require.Error(t, err)
	require.Equal(t, lib.CodeUnknownAsset, err.Code())
}

func TestDepositNeverNegative(t *testing.T) {
	// for any debit sequence the balance never goes negative
	sm, _, _, asset0, _ := newTestPool(t)
	account := newTestAddress(t, 9)
	require.NoError(t, sm.DepositAdd(account, asset0, lib.NewAmount(5)))
	for _, amount := range []uint64{3, 3, 2, 1} {
		if err := sm.DepositSub(account, asset0, lib.NewAmount(amount)); err != nil {
			require.Equal(t, lib.CodeInsufficientDeposit, err.Code())
		}
		balance, err := sm.GetDeposit(asset0, account)
		require.NoError(t, err)
		require.GreaterOrEqual(t, balance.Sign(), 0)
	}
}

func TestDepositCreditOverflow(t *testing.T) {
	// a credit may not push the balance past the 128-bit range
	sm, _, _, asset0, _ := newTestPool(t)
	account := newTestAddress(t, 9)
	require.NoError(t, sm.DepositAdd(account, asset0, lib.MaxAmount))
	err := sm.DepositAdd(account, asset0, lib.NewAmount(1))
	require.Error(t, err)
	require.Equal(t, lib.CodeAmountOverflow, err.Code())
	balance, e := sm.GetDeposit(asset0, account)
	require.NoError(t, e)
	require.Equal(t, new(big.Int).Set(lib.MaxAmount), balance)
}

func TestOnAssetTransfer(t *testing.T) {
	// the notification entry point credits the sender's deposit for the calling asset
	sm, _, _, asset0, _ := newTestPool(t)
	sender := newTestAddress(t, 9)
	require.NoError(t, sm.OnAssetTransfer(asset0, sender, lib.NewAmount(42)))
	balance, err := sm.GetDeposit(asset0, sender)
	require.NoError(t, err)
	require.Equal(t, lib.NewAmount(42), balance)
	// an unknown notifying asset is rejected
	err = sm.OnAssetTransfer(newTestAddress(t, 77), sender, lib.NewAmount(1))
	require.Error(t, err)
	require.Equal(t, lib.CodeUnknownAsset, err.Code())
}
