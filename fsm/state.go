package fsm

import (
	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
)

// StateMachine is the core component responsible for maintaining and updating the pool state:
// the deposit ledger, the reserve pair, and the identities fixed at initialization.
// Execution is single-writer; the hosting layer serializes mutating operations, so no
// locking happens here
type StateMachine struct {
	store    lib.RWStoreI
	transfer TransferI
	metadata MetadataI
	Config   lib.Config
	log      lib.LoggerI
}

// New() creates a new instance of a StateMachine over the given store and collaborators
func New(c lib.Config, store lib.StoreI, transfer TransferI, metadata MetadataI, log lib.LoggerI) *StateMachine {
	return &StateMachine{
		store:    store,
		transfer: transfer,
		metadata: metadata,
		Config:   c,
		log:      log,
	}
}

// Initialize() executes the one-way pool construction: fixes the owner and the two tradable
// assets, zeroes both reserves, and records the informational asset metadata
func (s *StateMachine) Initialize(owner, asset0, asset1 crypto.AddressI) lib.ErrorI {
	// the pool may only be constructed once
	params, err := s.GetParams()
	if err != nil {
		return err
	}
	if params != nil {
		return ErrAlreadyInitialized()
	}
	// reject a malformed owner identity
	if owner == nil || !crypto.AddressIsValid(owner.Bytes()) {
		return ErrInvalidOwner(addressString(owner))
	}
	// the pair must be two well-formed, distinct assets
	if asset0 == nil || !crypto.AddressIsValid(asset0.Bytes()) {
		return lib.ErrInvalidAddress(addressString(asset0))
	}
	if asset1 == nil || !crypto.AddressIsValid(asset1.Bytes()) {
		return lib.ErrInvalidAddress(addressString(asset1))
	}
	if asset0.Equals(asset1) {
		return ErrDuplicateAsset()
	}
	// fix the principals
	if err = s.setParams(&PoolParams{
		Owner:  owner.Bytes(),
		Asset0: asset0.Bytes(),
		Asset1: asset1.Bytes(),
	}); err != nil {
		return err
	}
	// both reserves start at zero; the pool is Illiquid until the owner adds liquidity
	if err = s.setReserves(asset0, lib.NewAmount(0), asset1, lib.NewAmount(0)); err != nil {
		return err
	}
	// record the informational metadata for each asset; a lookup failure falls back to
	// defaults rather than failing construction
	for _, asset := range []crypto.AddressI{asset0, asset1} {
		if err = s.setMetadata(asset, s.lookupMetadata(asset)); err != nil {
			return err
		}
	}
	s.log.Infof("pool initialized: owner=%s asset0=%s asset1=%s", owner.String(), asset0.String(), asset1.String())
	return nil
}

// Initialized() returns true once the pool params exist in state
func (s *StateMachine) Initialized() (bool, lib.ErrorI) {
	params, err := s.GetParams()
	if err != nil {
		return false, err
	}
	return params != nil, nil
}

// GetParams() returns the pool params or nil before initialization
func (s *StateMachine) GetParams() (*PoolParams, lib.ErrorI) {
	bz, err := s.store.Get(KeyForParams())
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	params := new(PoolParams)
	if err = lib.Unmarshal(bz, params); err != nil {
		return nil, err
	}
	return params, nil
}

// mustParams() returns the pool params, failing when the pool was never initialized
func (s *StateMachine) mustParams() (*PoolParams, lib.ErrorI) {
	params, err := s.GetParams()
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, ErrUninitialized()
	}
	return params, nil
}

func (s *StateMachine) setParams(params *PoolParams) lib.ErrorI {
	bz, err := lib.Marshal(params)
	if err != nil {
		return err
	}
	return s.store.Set(KeyForParams(), bz)
}

// checkAsset() ensures the asset identity is one of the two configured for the pool;
// every ledger and reserve operation rejects here before any mutation
func (s *StateMachine) checkAsset(asset crypto.AddressI) lib.ErrorI {
	params, err := s.mustParams()
	if err != nil {
		return err
	}
	if asset == nil {
		return ErrUnknownAsset(addressString(asset))
	}
	if asset.Equals(crypto.NewAddress(params.Asset0)) || asset.Equals(crypto.NewAddress(params.Asset1)) {
		return nil
	}
	return ErrUnknownAsset(asset.String())
}

// addressString() formats a possibly-nil address for error messages
func addressString(a crypto.AddressI) string {
	if a == nil {
		return "<nil>"
	}
	return a.String()
}
