package shared

import "errors"

// Configuration errors reject market creation outright.
var (
	ErrCurveConfiguration = errors.New("curve configuration invalid")
	ErrFeeSplitInvalid    = errors.New("fee split exceeds max basis points")
)

// Domain errors: math asked to operate outside its valid input range.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("value overflows 256 bits")
	ErrInvalidInput   = errors.New("input outside function domain")
)

// Policy violations: the order is well-formed but not acceptable.
var (
	ErrSlippageExceeded = errors.New("slippage bound exceeded")
	ErrWrongPhase       = errors.New("market is not in the expected phase")
	ErrInvalidOrderSize = errors.New("order size must be greater than zero")
	ErrOrderTooSmall    = errors.New("order below minimum size")
	ErrMarketPaused     = errors.New("market is paused")
	ErrReentrantCall    = errors.New("reentrant call")
)

// Liquidity errors.
var (
	ErrSupplyExceeded        = errors.New("allocated supply exhausted")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrInsufficientPayment   = errors.New("payment does not cover order cost")
	ErrInsufficientFunds     = errors.New("insufficient funds")
)

// Authorization errors on reserve operations.
var (
	ErrDeadlineExpired  = errors.New("request deadline expired")
	ErrInvalidNonce     = errors.New("nonce already used")
	ErrInvalidSignature = errors.New("signature verification failed")
)
