package fsm

import (
	"math/big"

	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
)

/*
	Amm.go implements the market engine: constant-product swaps with a 0.3% fee and
	owner-only liquidity additions, orchestrating ledger debits/credits against the
	reserve pair. Every failure is raised before the first state write, so a failed
	operation leaves state unchanged
*/

// AddLiquidity() moves amount0 of asset0 and amount1 of asset1 from the caller's deposit
// ledger into the reserves; restricted to the owner, who is the sole liquidity provider.
// Liquidity can only be added from funds already credited to the caller's ledger
func (s *StateMachine) AddLiquidity(caller crypto.AddressI, asset0 crypto.AddressI, amount0 *big.Int, asset1 crypto.AddressI, amount1 *big.Int) lib.ErrorI {
	params, err := s.mustParams()
	if err != nil {
		return err
	}
	// only the owner may add liquidity
	if caller == nil || !caller.Equals(crypto.NewAddress(params.Owner)) {
		return ErrUnauthorized()
	}
	if err = lib.CheckAmount(amount0); err != nil {
		return err
	}
	if err = lib.CheckAmount(amount1); err != nil {
		return err
	}
	if asset0 != nil && asset0.Equals(asset1) {
		return ErrDuplicateAsset()
	}
	// validate both legs up front so the operation stays all-or-nothing
	balance0, err := s.GetDeposit(asset0, caller)
	if err != nil {
		return err
	}
	balance1, err := s.GetDeposit(asset1, caller)
	if err != nil {
		return err
	}
	if balance0.Cmp(amount0) < 0 || balance1.Cmp(amount1) < 0 {
		return ErrInsufficientDeposit()
	}
	reserve0, err := s.GetReserve(asset0)
	if err != nil {
		return err
	}
	reserve1, err := s.GetReserve(asset1)
	if err != nil {
		return err
	}
	newReserve0 := new(big.Int).Add(reserve0, amount0)
	newReserve1 := new(big.Int).Add(reserve1, amount1)
	if err = lib.CheckAmount(newReserve0); err != nil {
		return err
	}
	if err = lib.CheckAmount(newReserve1); err != nil {
		return err
	}
	// debit both legs from the owner's deposits
	if err = s.DepositSub(caller, asset0, amount0); err != nil {
		return err
	}
	if err = s.DepositSub(caller, asset1, amount1); err != nil {
		return err
	}
	// raise both reserves to the post-operation amounts
	if err = s.setReserves(asset0, newReserve0, asset1, newReserve1); err != nil {
		return err
	}
	s.log.Infof("liquidity added: %s %s + %s %s", lib.AmountToString(amount0), asset0.String(),
		lib.AmountToString(amount1), asset1.String())
	return nil
}

// Swap() trades amountIn of assetIn for the constant-product output of assetOut,
// callable by any account with a sufficient deposit. The output is credited to the
// caller's ledger and immediately debited back out for dispatch to the external asset
// service, keeping the ledger the single record of funds owed even though settlement
// completes out-of-band. Returns the output amount
func (s *StateMachine) Swap(caller, assetIn, assetOut crypto.AddressI, amountIn *big.Int) (*big.Int, lib.ErrorI) {
	// a swap is only valid while the pool is Liquid
	if err := s.assertLiquidity(); err != nil {
		return nil, err
	}
	if err := lib.CheckAmount(amountIn); err != nil {
		return nil, err
	}
	if caller == nil || !crypto.AddressIsValid(caller.Bytes()) {
		return nil, lib.ErrInvalidAddress(addressString(caller))
	}
	// both legs must be registered pool assets and distinct
	if assetIn != nil && assetIn.Equals(assetOut) {
		return nil, ErrDuplicateAsset()
	}
	reserveIn, err := s.GetReserve(assetIn)
	if err != nil {
		return nil, err
	}
	reserveOut, err := s.GetReserve(assetOut)
	if err != nil {
		return nil, err
	}
	// price with the 997/1000 fee; a zero amountIn floors to a zero amountOut
	amountOut := lib.QuoteAmountOut(amountIn, reserveIn, reserveOut)
	// the formula guarantees amountOut < reserveOut and amountOut within the balance
	// range; both are still checked so a violation can never drive a reserve negative
	if err = lib.CheckAmount(amountOut); err != nil {
		return nil, err
	}
	if amountOut.Cmp(reserveOut) > 0 {
		return nil, ErrReserveUnderflow()
	}
	newReserveIn := new(big.Int).Add(reserveIn, amountIn)
	if err = lib.CheckAmount(newReserveIn); err != nil {
		return nil, err
	}
	// pre-validate the output credit against the caller's existing balance so a
	// failure cannot land after the input debit is written
	balanceOut, err := s.GetDeposit(assetOut, caller)
	if err != nil {
		return nil, err
	}
	if err = lib.CheckAmount(new(big.Int).Add(balanceOut, amountOut)); err != nil {
		return nil, err
	}
	// the caller must have pre-deposited at least amountIn
	if err = s.DepositSub(caller, assetIn, amountIn); err != nil {
		return nil, err
	}
	// credit the output, then immediately debit it back out for external settlement
	if err = s.DepositAdd(caller, assetOut, amountOut); err != nil {
		return nil, err
	}
	if err = s.withdraw(caller, assetOut, amountOut); err != nil {
		return nil, err
	}
	// update reserves to the post-swap amounts
	if err = s.setReserves(assetIn, newReserveIn, assetOut, new(big.Int).Sub(reserveOut, amountOut)); err != nil {
		return nil, err
	}
	s.log.Infof("swap: %s paid %s %s for %s %s", caller.String(), lib.AmountToString(amountIn),
		assetIn.String(), lib.AmountToString(amountOut), assetOut.String())
	return amountOut, nil
}

// withdraw() debits the account's deposit and hands the funds to the external asset
// service; the dispatch is fire-and-forget, so a downstream transfer failure does not
// restore the ledger entry
func (s *StateMachine) withdraw(account, asset crypto.AddressI, amount *big.Int) lib.ErrorI {
	if err := s.DepositSub(account, asset, amount); err != nil {
		return err
	}
	s.log.Debugf("withdraw to: %s, asset: %s, amount: %s", account.String(), asset.String(), lib.AmountToString(amount))
	s.transfer.Transfer(account, asset, amount)
	return nil
}
