package lib

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/alecthomas/units"
)

/* This file implements logic for 'user controlled' global configurations of each module of the node */

const (
	// FILE NAMES in the 'data directory'
	ConfigFilePath = "config.json" // the file path for the node configuration
)

// Config is the structure of the user configuration options for a pool node
type Config struct {
	MainConfig  // main options spanning over all modules
	RPCConfig   // rpc API options
	StoreConfig // persistence options
	PoolConfig  // pool options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:  DefaultMainConfig(),
		RPCConfig:   DefaultRPCConfig(),
		StoreConfig: DefaultStoreConfig(),
		PoolConfig:  PoolConfig{},
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel    string `json:"logLevel"` // any level includes the levels above it: debug < info < warn < error
	DataDirPath string `json:"dataDirPath"`
}

// DefaultMainConfig() sets log level to 'info'
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel:    "info",
		DataDirPath: DefaultDataDirPath(),
	}
}

// GetLogLevel() parses the configured log level string into its int32 level
func (m MainConfig) GetLogLevel() int32 {
	level, err := LogLevelFromString(m.LogLevel)
	if err != nil {
		return InfoLevel
	}
	return level
}

// RPC CONFIG BELOW

type RPCConfig struct {
	RPCPort         string `json:"rpcPort"`         // the port the json API listens on
	TimeoutS        int    `json:"timeoutS"`        // read / write timeout in seconds
	CORSAllowedURLs string `json:"corsAllowedUrls"` // comma separated list of allowed origins; '*' for any
}

// DefaultRPCConfig() sets the API port and a conservative timeout
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		RPCPort:         "50000",
		TimeoutS:        3,
		CORSAllowedURLs: "*",
	}
}

// STORE CONFIG BELOW

type StoreConfig struct {
	DBName       string `json:"dbName"`       // the directory name of the database within the data dir
	InMemory     bool   `json:"inMemory"`     // an in-memory database; used for testing
	ValueLogSize string `json:"valueLogSize"` // max size of the database value log file, ex: 1GB
}

// DefaultStoreConfig() is disk-backed with a 1GB value log
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DBName:       "rockpool",
		InMemory:     false,
		ValueLogSize: "1GB",
	}
}

// GetValueLogSize() parses the configured value log size into bytes
func (s StoreConfig) GetValueLogSize() int64 {
	size, err := units.ParseBase2Bytes(s.ValueLogSize)
	if err != nil {
		size, _ = units.ParseBase2Bytes(DefaultStoreConfig().ValueLogSize)
	}
	return int64(size)
}

// POOL CONFIG BELOW

// PoolConfig identifies the pool principals: the owner, the two tradable assets, and the
// external asset-transfer service the node settles withdrawals through
type PoolConfig struct {
	OwnerAddress    string `json:"ownerAddress"`    // hex address of the sole liquidity provider
	Asset0Address   string `json:"asset0Address"`   // hex address identifying asset0
	Asset1Address   string `json:"asset1Address"`   // hex address identifying asset1
	AssetServiceURL string `json:"assetServiceUrl"` // base url of the external asset-transfer service
}

// NewConfigFromFile() populates a Config object from a JSON file
func NewConfigFromFile(filePath string) (Config, ErrorI) {
	bz, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, ErrReadFile(err)
	}
	c := DefaultConfig()
	if err = json.Unmarshal(bz, &c); err != nil {
		return Config{}, ErrJSONUnmarshal(err)
	}
	return c, nil
}

// WriteToFile() saves the Config object to a JSON file
func (c Config) WriteToFile(filePath string) ErrorI {
	bz, err := MarshalJSONIndent(c)
	if err != nil {
		return err
	}
	if e := os.WriteFile(filePath, bz, os.ModePerm); e != nil {
		return ErrWriteFile(e)
	}
	return nil
}

// DefaultDataDirPath() returns the default data directory: $HOME/.rockpool
func DefaultDataDirPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rockpool")
}
