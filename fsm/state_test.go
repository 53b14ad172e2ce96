package fsm

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
	"github.com/rockpool-network/rockpool/store"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		owner  crypto.AddressI
		asset0 crypto.AddressI
		asset1 crypto.AddressI
		error  lib.ErrorCode
	}{
		{
			name:   "valid construction",
			detail: "a well formed owner and two distinct assets initialize the pool with zero reserves",
			owner:  newTestAddress(t),
			asset0: newTestAddress(t, 1),
			asset1: newTestAddress(t, 2),
		},
		{
			name:   "nil owner",
			detail: "a missing owner identity is rejected",
			owner:  nil,
			asset0: newTestAddress(t, 1),
			asset1: newTestAddress(t, 2),
			error:  lib.CodeInvalidOwner,
		},
		{
			name:   "malformed owner",
			detail: "an owner identity of the wrong width is rejected",
			owner:  crypto.NewAddress([]byte("short")),
			asset0: newTestAddress(t, 1),
			asset1: newTestAddress(t, 2),
			error:  lib.CodeInvalidOwner,
		},
		{
			name:   "duplicate assets",
			detail: "the pair must be two distinct assets",
			owner:  newTestAddress(t),
			asset0: newTestAddress(t, 1),
			asset1: newTestAddress(t, 1),
			error:  lib.CodeDuplicateAsset,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm, _ := newTestStateMachine(t)
			err := sm.Initialize(test.owner, test.asset0, test.asset1)
			if test.error != 0 {
				require.Error(t, err)
				require.Equal(t, test.error, err.Code())
				// a failed construction leaves the pool uninitialized
				initialized, e := sm.Initialized()
				require.NoError(t, e)
				require.False(t, initialized)
				return
			}
			require.NoError(t, err)
			// params are fixed
			params, e := sm.GetParams()
			require.NoError(t, e)
			require.Equal(t, test.owner.Bytes(), params.Owner)
			require.Equal(t, test.asset0.Bytes(), params.Asset0)
			require.Equal(t, test.asset1.Bytes(), params.Asset1)
			// both reserves start at zero
			reserve0, reserve1, e := sm.GetReserves()
			require.NoError(t, e)
			require.Zero(t, reserve0.Sign())
			require.Zero(t, reserve1.Sign())
		})
	}
}

func TestInitializeOnce(t *testing.T) {
	// construction is one-way; a second attempt fails and changes nothing
	sm, _ := newTestStateMachine(t)
	require.NoError(t, sm.Initialize(newTestAddress(t), newTestAddress(t, 1), newTestAddress(t, 2)))
	err := sm.Initialize(newTestAddress(t, 3), newTestAddress(t, 4), newTestAddress(t, 5))
	require.Error(t, err)
	require.Equal(t, lib.CodeAlreadyInitialized, err.Code())
	params, e := sm.GetParams()
	require.NoError(t, e)
	require.Equal(t, newTestAddressBytes(t), params.Owner)
}

func TestInitializeMetadata(t *testing.T) {
	// the metadata collaborator populates the informational records; a missing
	// collaborator falls back to defaults
	sm, _ := newTestStateMachine(t)
	sm.metadata = &testMetadata{metadata: &AssetMetadata{Name: "wrapped rock", Symbol: "ROCK", Decimals: 18}}
	asset0, asset1 := newTestAddress(t, 1), newTestAddress(t, 2)
	require.NoError(t, sm.Initialize(newTestAddress(t), asset0, asset1))
	got, err := sm.GetMetadata(asset0)
	require.NoError(t, err)
	require.Equal(t, "ROCK", got.Symbol)
	require.EqualValues(t, 18, got.Decimals)
}

func TestUninitializedOperationsFail(t *testing.T) {
	// every ledger / reserve operation requires an initialized pool
	sm, _ := newTestStateMachine(t)
	asset, account := newTestAddress(t, 1), newTestAddress(t, 9)
	_, err := sm.GetDeposit(asset, account)
	require.Error(t, err)
	require.Equal(t, lib.CodeUninitialized, err.Code())
	_, _, err = sm.GetReserves()
	require.Error(t, err)
	require.Equal(t, lib.CodeUninitialized, err.Code())
}

// TEST HELPERS BELOW

// dispatchedTransfer records one fire-and-forget dispatch to the asset service
type dispatchedTransfer struct {
	destination crypto.AddressI
	asset       crypto.AddressI
	amount      *big.Int
}

// testTransferer is a recording fsm.TransferI used in place of the asset service client
type testTransferer struct {
	dispatched []dispatchedTransfer
}

func (t *testTransferer) Transfer(destination, asset crypto.AddressI, amount *big.Int) {
	t.dispatched = append(t.dispatched, dispatchedTransfer{destination, asset, new(big.Int).Set(amount)})
}

// testMetadata is a canned fsm.MetadataI
type testMetadata struct {
	metadata *AssetMetadata
	err      error
}

func (t *testMetadata) Metadata(_ crypto.AddressI) (*AssetMetadata, error) {
	return t.metadata, t.err
}

func newTestStateMachine(t *testing.T) (*StateMachine, *testTransferer) {
	log := lib.NewNullLogger()
	db, err := store.NewStoreInMemory(log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	transfer := new(testTransferer)
	sm := New(lib.Config{MainConfig: lib.DefaultMainConfig()}, db, transfer, nil, log)
	return sm, transfer
}

// newTestPool() returns an initialized state machine plus its owner and asset pair
func newTestPool(t *testing.T) (sm *StateMachine, transfer *testTransferer, owner, asset0, asset1 crypto.AddressI) {
	sm, transfer = newTestStateMachine(t)
	owner, asset0, asset1 = newTestAddress(t), newTestAddress(t, 1), newTestAddress(t, 2)
	require.NoError(t, sm.Initialize(owner, asset0, asset1))
	return
}

func newTestAddress(t *testing.T, variation ...int) crypto.AddressI {
	b := byte(1)
	if len(variation) != 0 {
		require.Less(t, variation[0], 255)
		b += byte(variation[0])
	}
	return crypto.NewAddress(bytes.Repeat([]byte{b}, crypto.AddressSize))
}

func newTestAddressBytes(t *testing.T, variation ...int) []byte {
	return newTestAddress(t, variation...).Bytes()
}
