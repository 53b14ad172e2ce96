package fsm

import (
	"github.com/rockpool-network/rockpool/lib/crypto"
)

// state keyspace: single-byte prefixes keep the keys lexicographically grouped per record type
var (
	paramsPrefix   = []byte{1}
	reservePrefix  = []byte{2}
	depositPrefix  = []byte{3}
	metadataPrefix = []byte{4}
)

func KeyForParams() []byte { return paramsPrefix }
func KeyForReserve(asset crypto.AddressI) []byte {
	return append(reservePrefix, asset.Bytes()...)
}
func KeyForDeposit(asset, account crypto.AddressI) []byte {
	return append(append(depositPrefix, asset.Bytes()...), account.Bytes()...)
}
func KeyForMetadata(asset crypto.AddressI) []byte {
	return append(metadataPrefix, asset.Bytes()...)
}
