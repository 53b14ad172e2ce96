package fsm

import (
	"math/big"

	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
)

/*
	Reserve.go implements the reserve pair: the pool-held quantity of each asset.
	Reserves are only mutated by the market engine; the setters here are narrow state
	writers, not business-rule enforcers
*/

// GetReserves() returns the current (reserve0, reserve1) pair in asset0/asset1 order
func (s *StateMachine) GetReserves() (reserve0, reserve1 *big.Int, err lib.ErrorI) {
	params, err := s.mustParams()
	if err != nil {
		return nil, nil, err
	}
	if reserve0, err = s.GetReserve(crypto.NewAddress(params.Asset0)); err != nil {
		return nil, nil, err
	}
	if reserve1, err = s.GetReserve(crypto.NewAddress(params.Asset1)); err != nil {
		return nil, nil, err
	}
	return reserve0, reserve1, nil
}

// GetReserve() returns the reserve held for one pool asset
func (s *StateMachine) GetReserve(asset crypto.AddressI) (*big.Int, lib.ErrorI) {
	if err := s.checkAsset(asset); err != nil {
		return nil, err
	}
	bz, err := s.store.Get(KeyForReserve(asset))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return lib.NewAmount(0), nil
	}
	reserve := new(Reserve)
	if err = lib.Unmarshal(bz, reserve); err != nil {
		return nil, err
	}
	return lib.AmountFromBytes(reserve.Amount), nil
}

// setReserves() unconditionally overwrites the stored reserve for each named asset;
// the market engine is responsible for passing amounts consistent with the pool invariants
func (s *StateMachine) setReserves(assetA crypto.AddressI, amountA *big.Int, assetB crypto.AddressI, amountB *big.Int) lib.ErrorI {
	if err := s.setReserve(assetA, amountA); err != nil {
		return err
	}
	return s.setReserve(assetB, amountB)
}

func (s *StateMachine) setReserve(asset crypto.AddressI, amount *big.Int) lib.ErrorI {
	bz, err := lib.Marshal(&Reserve{
		Asset:  asset.Bytes(),
		Amount: lib.AmountToBytes(amount),
	})
	if err != nil {
		return err
	}
	return s.store.Set(KeyForReserve(asset), bz)
}

// assertLiquidity() fails unless both reserves are strictly positive; invoked before any
// swap pricing calculation
func (s *StateMachine) assertLiquidity() lib.ErrorI {
	reserve0, reserve1, err := s.GetReserves()
	if err != nil {
		return err
	}
	if reserve0.Sign() <= 0 || reserve1.Sign() <= 0 {
		return ErrInsufficientLiquidity()
	}
	return nil
}
