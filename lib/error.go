package lib

import (
	"fmt"
	"math"
)

// ErrorI is the interface all errors raised by this node satisfy
type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

// Error is the concrete implementation of ErrorI
type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	// Constructs a new Error instance
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code, and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

const (
	NoCode ErrorCode = math.MaxUint32

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeInvalidAddress  ErrorCode = 1
	CodeJSONMarshal     ErrorCode = 2
	CodeJSONUnmarshal   ErrorCode = 3
	CodeUnmarshal       ErrorCode = 4
	CodeMarshal         ErrorCode = 5
	CodeInvalidAmount   ErrorCode = 6
	CodeAmountOverflow  ErrorCode = 7
	CodeWriteFile       ErrorCode = 8
	CodeReadFile        ErrorCode = 9
	CodeInvalidLogLevel ErrorCode = 10

	// Pool Module (state machine)
	PoolModule ErrorModule = "pool"

	// Pool Module Error Codes
	CodeUnauthorized          ErrorCode = 1
	CodeUnknownAsset          ErrorCode = 2
	CodeInsufficientDeposit   ErrorCode = 3
	CodeInsufficientLiquidity ErrorCode = 4
	CodeAlreadyInitialized    ErrorCode = 5
	CodeInvalidOwner          ErrorCode = 6
	CodeUninitialized         ErrorCode = 7
	CodeReserveUnderflow      ErrorCode = 8
	CodeDuplicateAsset        ErrorCode = 9

	// Store Module
	StoreModule ErrorModule = "store"

	// Store Module Error Codes
	CodeOpenDB      ErrorCode = 1
	CodeCloseDB     ErrorCode = 2
	CodeStoreGet    ErrorCode = 3
	CodeStoreSet    ErrorCode = 4
	CodeStoreDelete ErrorCode = 5

	// RPC Module
	RPCModule ErrorModule = "rpc"

	// RPC Module Error Codes
	CodeInvalidRequest   ErrorCode = 1
	CodeTransferDispatch ErrorCode = 2
)

// shared error constructors below

func ErrInvalidAddress(s string) ErrorI {
	return NewError(CodeInvalidAddress, MainModule, fmt.Sprintf("invalid address: %s", s))
}

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("json marshal failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("json unmarshal failed with err: %s", err.Error()))
}

func ErrMarshal(err error) ErrorI {
	return NewError(CodeMarshal, MainModule, fmt.Sprintf("marshal failed with err: %s", err.Error()))
}

func ErrUnmarshal(err error) ErrorI {
	return NewError(CodeUnmarshal, MainModule, fmt.Sprintf("unmarshal failed with err: %s", err.Error()))
}

func ErrInvalidAmount(s string) ErrorI {
	return NewError(CodeInvalidAmount, MainModule, fmt.Sprintf("invalid amount: %s", s))
}

func ErrAmountOverflow() ErrorI {
	return NewError(CodeAmountOverflow, MainModule, "amount exceeds the 128-bit balance range")
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("write file failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, fmt.Sprintf("read file failed with err: %s", err.Error()))
}

func ErrInvalidLogLevel(s string) ErrorI {
	return NewError(CodeInvalidLogLevel, MainModule, fmt.Sprintf("invalid log level: %s", s))
}
