package fsm

/*
	This file defines the borsh-encoded state records; balance amounts are stored as
	big-endian bytes so the full 128-bit range fits without a fixed-width integer type
*/

// PoolParams holds the identities fixed at initialization: the privileged owner and the
// two tradable assets; its presence in state is what marks the pool initialized
type PoolParams struct {
	Owner  []byte `json:"owner"`
	Asset0 []byte `json:"asset0"`
	Asset1 []byte `json:"asset1"`
}

// Reserve is the pool-held quantity of one asset
type Reserve struct {
	Asset  []byte `json:"asset"`
	Amount []byte `json:"amount"`
}

// Deposit is one ledger entry: funds an account has made available to the pool for one
// asset but not yet committed or withdrawn
type Deposit struct {
	Address []byte `json:"address"`
	Asset   []byte `json:"asset"`
	Amount  []byte `json:"amount"`
}

// AssetMetadata is informational only; never consulted by pricing or ledger logic
type AssetMetadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// DefaultAssetMetadata() is the fallback when the asset service lookup fails at initialization
func DefaultAssetMetadata() *AssetMetadata {
	return &AssetMetadata{
		Name:     "unknown asset",
		Symbol:   "UNKNOWN",
		Decimals: 24,
	}
}
