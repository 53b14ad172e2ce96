package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rockpool-network/rockpool/cmd/rpc"
	"github.com/rockpool-network/rockpool/fsm"
	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
	"github.com/rockpool-network/rockpool/store"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{Use: "rockpool", Short: "rockpool is a two-asset AMM settlement node"}

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "start the pool daemon",
		Run: func(cmd *cobra.Command, args []string) {
			Start()
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "print the software version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(rpc.SoftwareVersion)
		},
	}

	dataDirPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirPath, "data-dir", lib.DefaultDataDirPath(), "custom data directory location")
	rootCmd.AddCommand(startCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// Start() boots the node: config, logger, store, state machine, and the rpc server
func Start() {
	config := InitializeDataDirectory(dataDirPath)
	logger := lib.NewLogger(lib.LoggerConfig{Level: config.GetLogLevel()}, config.DataDirPath)
	db, err := store.New(config, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	sm := fsm.New(config, db, rpc.NewTransferer(config, logger), rpc.NewMetadataClient(config), logger)
	// construct the pool from the configured principals on first boot
	if err = initializePool(sm, config); err != nil {
		logger.Fatal(err.Error())
	}
	server := rpc.NewServer(sm, config, logger)
	server.Start()
	// block until an exit signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGABRT)
	sig := <-stop
	logger.Infof("exit command %s received", sig)
	if err = db.Close(); err != nil {
		logger.Error(err.Error())
	}
	os.Exit(0)
}

// initializePool() executes the one-way construction when the pool params are not yet in state
func initializePool(sm *fsm.StateMachine, config lib.Config) lib.ErrorI {
	initialized, err := sm.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}
	owner, e := crypto.NewAddressFromString(config.OwnerAddress)
	if e != nil {
		return fsm.ErrInvalidOwner(config.OwnerAddress)
	}
	asset0, e := crypto.NewAddressFromString(config.Asset0Address)
	if e != nil {
		return lib.ErrInvalidAddress(config.Asset0Address)
	}
	asset1, e := crypto.NewAddressFromString(config.Asset1Address)
	if e != nil {
		return lib.ErrInvalidAddress(config.Asset1Address)
	}
	return sm.Initialize(owner, asset0, asset1)
}

// InitializeDataDirectory() ensures the data directory exists and loads the config file,
// writing a default config on first run
func InitializeDataDirectory(dataDirPath string) lib.Config {
	if err := os.MkdirAll(dataDirPath, os.ModePerm); err != nil {
		log.Fatal(err)
	}
	configFilePath := filepath.Join(dataDirPath, lib.ConfigFilePath)
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		config := lib.DefaultConfig()
		config.DataDirPath = dataDirPath
		if e := config.WriteToFile(configFilePath); e != nil {
			log.Fatal(e.Error())
		}
	}
	config, err := lib.NewConfigFromFile(configFilePath)
	if err != nil {
		log.Fatal(err.Error())
	}
	config.DataDirPath = dataDirPath
	return config
}
