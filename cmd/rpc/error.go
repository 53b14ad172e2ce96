package rpc

import (
	"fmt"

	"github.com/rockpool-network/rockpool/lib"
)

// This file defines error objects for the rpc module

func ErrInvalidRequest(err error) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidRequest, lib.RPCModule, fmt.Sprintf("invalid request: %s", err.Error()))
}

func ErrTransferDispatch(err error) lib.ErrorI {
	return lib.NewError(lib.CodeTransferDispatch, lib.RPCModule, fmt.Sprintf("transfer dispatch failed with err: %s", err.Error()))
}
