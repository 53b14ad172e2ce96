package fsm

import (
	"math/big"

	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
)

/*
	Ledger.go implements the per-asset deposit ledger: funds a user has made available to
	the pool but not yet committed. Entries are created lazily; reads default to zero
*/

// GetDeposit() returns an account's deposit balance for an asset, defaulting to zero for
// a pair that was never credited
func (s *StateMachine) GetDeposit(asset, account crypto.AddressI) (*big.Int, lib.ErrorI) {
	if err := s.checkAsset(asset); err != nil {
		return nil, err
	}
	bz, err := s.store.Get(KeyForDeposit(asset, account))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return lib.NewAmount(0), nil
	}
	deposit := new(Deposit)
	if err = lib.Unmarshal(bz, deposit); err != nil {
		return nil, err
	}
	return lib.AmountFromBytes(deposit.Amount), nil
}

// DepositAdd() credits an amount to the account's deposit balance for an asset
func (s *StateMachine) DepositAdd(account, asset crypto.AddressI, amount *big.Int) lib.ErrorI {
	if err := lib.CheckAmount(amount); err != nil {
		return err
	}
	balance, err := s.GetDeposit(asset, account)
	if err != nil {
		return err
	}
	newBalance := new(big.Int).Add(balance, amount)
	// the credited balance must still fit the 128-bit range
	if err = lib.CheckAmount(newBalance); err != nil {
		return err
	}
	return s.setDeposit(account, asset, newBalance)
}

// DepositSub() debits an amount from the account's deposit balance for an asset;
// all-or-nothing: a debit beyond the current balance is rejected, never clamped
func (s *StateMachine) DepositSub(account, asset crypto.AddressI, amount *big.Int) lib.ErrorI {
	if err := lib.CheckAmount(amount); err != nil {
		return err
	}
	balance, err := s.GetDeposit(asset, account)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientDeposit()
	}
	return s.setDeposit(account, asset, new(big.Int).Sub(balance, amount))
}

// setDeposit() writes the ledger entry; a zero balance persists as an entry
func (s *StateMachine) setDeposit(account, asset crypto.AddressI, balance *big.Int) lib.ErrorI {
	bz, err := lib.Marshal(&Deposit{
		Address: account.Bytes(),
		Asset:   asset.Bytes(),
		Amount:  lib.AmountToBytes(balance),
	})
	if err != nil {
		return err
	}
	return s.store.Set(KeyForDeposit(asset, account), bz)
}
