package fsm

import (
	"math/big"

	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
)

/*
	Transfer.go is the boundary with the external asset-transfer service: outbound
	withdrawals are dispatched through TransferI without observing the result, and
	inbound arrivals are credited through OnAssetTransfer()
*/

// TransferI dispatches an asset transfer to the external asset service.
// Fire-and-forget: the state machine never learns the outcome, and retries (if any)
// belong to the implementation behind this interface
type TransferI interface {
	Transfer(destination, asset crypto.AddressI, amount *big.Int)
}

// MetadataI resolves the informational metadata of an asset
type MetadataI interface {
	Metadata(asset crypto.AddressI) (*AssetMetadata, error)
}

// OnAssetTransfer() is the deposit-credit entry point invoked when the asset service
// notifies the node that funds have arrived for an account; the asset identity is the
// identity of the notifying service
func (s *StateMachine) OnAssetTransfer(asset, sender crypto.AddressI, amount *big.Int) lib.ErrorI {
	if err := s.checkAsset(asset); err != nil {
		return err
	}
	if err := s.DepositAdd(sender, asset, amount); err != nil {
		return err
	}
	s.log.Infof("transfer received: asset: %s sender: %s amount: %s", asset.String(), sender.String(), lib.AmountToString(amount))
	return nil
}

// GetMetadata() returns the stored metadata for a pool asset
func (s *StateMachine) GetMetadata(asset crypto.AddressI) (*AssetMetadata, lib.ErrorI) {
	if err := s.checkAsset(asset); err != nil {
		return nil, err
	}
	bz, err := s.store.Get(KeyForMetadata(asset))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return DefaultAssetMetadata(), nil
	}
	metadata := new(AssetMetadata)
	if err = lib.Unmarshal(bz, metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// lookupMetadata() queries the metadata collaborator, falling back to defaults on failure
func (s *StateMachine) lookupMetadata(asset crypto.AddressI) *AssetMetadata {
	if s.metadata == nil {
		return DefaultAssetMetadata()
	}
	metadata, err := s.metadata.Metadata(asset)
	if err != nil || metadata == nil {
		s.log.Warnf("metadata lookup for %s failed, using defaults", asset.String())
		return DefaultAssetMetadata()
	}
	return metadata
}

func (s *StateMachine) setMetadata(asset crypto.AddressI, metadata *AssetMetadata) lib.ErrorI {
	bz, err := lib.Marshal(metadata)
	if err != nil {
		return err
	}
	return s.store.Set(KeyForMetadata(asset), bz)
}
