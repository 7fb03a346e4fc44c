package wallet

import "time"

// Default configuration values
const (
	DefaultReadRetries     = 2
	DefaultInitialInterval = 200 * time.Millisecond
	DefaultMaxElapsedTime  = 5 * time.Second
)

// Operation names used for metrics
const (
	opSync         = "wallet_sync"
	opFetchBalance = "wallet_fetch_balance"
	opGetWallet    = "wallet_get"
)
