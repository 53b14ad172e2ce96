package lib

// RWStoreI is the narrow key-value interface the state machine reads and writes through
type RWStoreI interface {
	// Get() returns the value for a key; nil with no error when the key is absent
	Get(key []byte) ([]byte, ErrorI)
	// Set() writes a value under a key
	Set(key, value []byte) ErrorI
	// Delete() removes a key
	Delete(key []byte) ErrorI
}

// StoreI is a RWStoreI that owns its underlying database handle
type StoreI interface {
	RWStoreI
	Close() ErrorI
}
