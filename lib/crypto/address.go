package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
)

// Address is a 20-byte identity for a ledger principal or an asset
type Address []byte

var _ AddressI = &Address{}

const (
	AddressSize = 20
)

// AddressI is the interface that all address implementations satisfy
type AddressI interface {
	Bytes() []byte
	String() string
	Equals(AddressI) bool
	json.Marshaler
}

func (a *Address) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }
func (a *Address) Bytes() []byte                { return (*a)[:] }
func (a *Address) String() string               { return hex.EncodeToString(a.Bytes()) }
func (a *Address) Equals(e AddressI) bool {
	if a == nil || e == nil {
		return false
	}
	return bytes.Equal(a.Bytes(), e.Bytes())
}

func (a *Address) UnmarshalJSON(b []byte) (err error) {
	var s string
	if err = json.Unmarshal(b, &s); err != nil {
		return
	}
	bz, err := hex.DecodeString(s)
	if err != nil {
		return
	}
	*a = bz
	return
}

// NewAddress() converts bytes into an Address object
func NewAddress(bz []byte) AddressI {
	a := Address(bz)
	return &a
}

// NewAddressFromString() converts a hex string into an Address object
func NewAddressFromString(s string) (AddressI, error) {
	bz, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewAddress(bz), nil
}

// AddressIsValid() returns true for a well-formed address
func AddressIsValid(bz []byte) bool { return len(bz) == AddressSize }
