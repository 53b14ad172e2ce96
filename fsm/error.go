package fsm

import (
	"fmt"

	"github.com/rockpool-network/rockpool/lib"
)

// This file defines error objects for the pool state machine module

func ErrUnauthorized() lib.ErrorI {
	return lib.NewError(lib.CodeUnauthorized, lib.PoolModule, "only the owner may add liquidity")
}

func ErrUnknownAsset(s string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownAsset, lib.PoolModule, fmt.Sprintf("asset %s is not a pool asset", s))
}

func ErrInsufficientDeposit() lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientDeposit, lib.PoolModule, "deposit balance is insufficient")
}

func ErrInsufficientLiquidity() lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientLiquidity, lib.PoolModule, "both reserves must be positive")
}

func ErrAlreadyInitialized() lib.ErrorI {
	return lib.NewError(lib.CodeAlreadyInitialized, lib.PoolModule, "the pool is already initialized")
}

func ErrInvalidOwner(s string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidOwner, lib.PoolModule, fmt.Sprintf("invalid owner address: %s", s))
}

func ErrUninitialized() lib.ErrorI {
	return lib.NewError(lib.CodeUninitialized, lib.PoolModule, "the pool is not initialized")
}

func ErrReserveUnderflow() lib.ErrorI {
	return lib.NewError(lib.CodeReserveUnderflow, lib.PoolModule, "swap output exceeds the outbound reserve")
}

func ErrDuplicateAsset() lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateAsset, lib.PoolModule, "the asset pair must be two distinct assets")
}
