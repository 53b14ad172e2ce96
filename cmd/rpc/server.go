package rpc

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alecthomas/units"
	"github.com/julienschmidt/httprouter"
	"github.com/rockpool-network/rockpool/fsm"
	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
	"github.com/rs/cors"
)

const (
	colon = ":"

	SoftwareVersion = "0.1.0-alpha"
	ContentType     = "Content-Type"
	ApplicationJSON = "application/json; charset=utf-8"
)

// Server exposes the pool state machine over a JSON HTTP API
type Server struct {
	// the pool state machine
	sm *fsm.StateMachine

	// node configuration
	config lib.Config

	// txMux serializes all mutating operations; the state machine itself takes no locks
	// because execution is one-operation-at-a-time by contract
	txMux sync.Mutex

	logger lib.LoggerI
}

// NewServer constructs and returns a new RPC server
func NewServer(sm *fsm.StateMachine, config lib.Config, logger lib.LoggerI) *Server {
	return &Server{
		sm:     sm,
		config: config,
		logger: logger,
	}
}

// Start initializes the RPC server
func (s *Server) Start() {
	go s.startRPC(createRouter(s), s.config.RPCPort)
	s.logger.Infof("rpc server started on port %s", s.config.RPCPort)
}

// startRPC() starts a single RPC server instance given a router and a port
func (s *Server) startRPC(router http.Handler, port string) {
	cor := cors.New(cors.Options{
		AllowedOrigins: strings.Split(s.config.CORSAllowedURLs, ","),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	})
	timeout := time.Duration(s.config.TimeoutS) * time.Second
	if err := (&http.Server{
		Addr:         colon + port,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		Handler:      cor.Handler(router),
	}).ListenAndServe(); err != nil {
		s.logger.Error(err.Error())
	}
}

// REQUEST / RESPONSE TYPES BELOW

type depositRequest struct {
	Asset   string `json:"asset"`
	Address string `json:"address"`
}

type metadataRequest struct {
	Asset string `json:"asset"`
}

type swapRequest struct {
	Address  string `json:"address"`
	AssetIn  string `json:"assetIn"`
	AssetOut string `json:"assetOut"`
	AmountIn string `json:"amountIn"`
}

type addLiquidityRequest struct {
	Address string `json:"address"`
	Asset0  string `json:"asset0"`
	Amount0 string `json:"amount0"`
	Asset1  string `json:"asset1"`
	Amount1 string `json:"amount1"`
}

type depositNotification struct {
	Asset  string `json:"asset"`
	Sender string `json:"sender"`
	Amount string `json:"amount"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type poolResponse struct {
	Owner  string `json:"owner"`
	Asset0 string `json:"asset0"`
	Asset1 string `json:"asset1"`
}

type reservesResponse struct {
	Reserve0 string `json:"reserve0"`
	Reserve1 string `json:"reserve1"`
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type swapResponse struct {
	AmountOut string `json:"amountOut"`
}

// HANDLERS BELOW

// Version returns the node software version
func (s *Server) Version(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, versionResponse{Version: SoftwareVersion}, http.StatusOK)
}

// Pool returns the owner and the two configured assets
func (s *Server) Pool(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	params, err := s.sm.GetParams()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	if params == nil {
		s.writeErr(w, fsm.ErrUninitialized())
		return
	}
	write(w, poolResponse{
		Owner:  crypto.NewAddress(params.Owner).String(),
		Asset0: crypto.NewAddress(params.Asset0).String(),
		Asset1: crypto.NewAddress(params.Asset1).String(),
	}, http.StatusOK)
}

// Reserves returns the current (reserve0, reserve1) pair
func (s *Server) Reserves(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	reserve0, reserve1, err := s.sm.GetReserves()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	write(w, reservesResponse{
		Reserve0: lib.AmountToString(reserve0),
		Reserve1: lib.AmountToString(reserve1),
	}, http.StatusOK)
}

// Deposit returns an account's deposit balance for an asset
func (s *Server) Deposit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(depositRequest)
	if err := readJSON(r, request); err != nil {
		s.writeErr(w, err)
		return
	}
	asset, err := parseAddress(request.Asset)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	account, err := parseAddress(request.Address)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	balance, err := s.sm.GetDeposit(asset, account)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	write(w, balanceResponse{Balance: lib.AmountToString(balance)}, http.StatusOK)
}

// Metadata returns the informational metadata of a pool asset
func (s *Server) Metadata(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(metadataRequest)
	if err := readJSON(r, request); err != nil {
		s.writeErr(w, err)
		return
	}
	asset, err := parseAddress(request.Asset)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	metadata, err := s.sm.GetMetadata(asset)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	write(w, metadata, http.StatusOK)
}

// Swap executes a trade of assetIn for assetOut on behalf of the requesting account
func (s *Server) Swap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(swapRequest)
	if err := readJSON(r, request); err != nil {
		s.writeErr(w, err)
		return
	}
	caller, err := parseAddress(request.Address)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	assetIn, err := parseAddress(request.AssetIn)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	assetOut, err := parseAddress(request.AssetOut)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	amountIn, err := lib.AmountFromString(request.AmountIn)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.txMux.Lock()
	amountOut, err := s.sm.Swap(caller, assetIn, assetOut, amountIn)
	s.txMux.Unlock()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	write(w, swapResponse{AmountOut: lib.AmountToString(amountOut)}, http.StatusOK)
}

// AddLiquidity moves deposited funds from the owner's ledger into the reserves
func (s *Server) AddLiquidity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(addLiquidityRequest)
	if err := readJSON(r, request); err != nil {
		s.writeErr(w, err)
		return
	}
	caller, err := parseAddress(request.Address)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	asset0, err := parseAddress(request.Asset0)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	asset1, err := parseAddress(request.Asset1)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	amount0, err := lib.AmountFromString(request.Amount0)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	amount1, err := lib.AmountFromString(request.Amount1)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.txMux.Lock()
	err = s.sm.AddLiquidity(caller, asset0, amount0, asset1, amount1)
	s.txMux.Unlock()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	reserve0, reserve1, err := s.sm.GetReserves()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	write(w, reservesResponse{
		Reserve0: lib.AmountToString(reserve0),
		Reserve1: lib.AmountToString(reserve1),
	}, http.StatusOK)
}

// DepositNotify is called by the external asset service when funds arrive for an account
func (s *Server) DepositNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(depositNotification)
	if err := readJSON(r, request); err != nil {
		s.writeErr(w, err)
		return
	}
	asset, err := parseAddress(request.Asset)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	sender, err := parseAddress(request.Sender)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	amount, err := lib.AmountFromString(request.Amount)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.txMux.Lock()
	err = s.sm.OnAssetTransfer(asset, sender, amount)
	s.txMux.Unlock()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	balance, err := s.sm.GetDeposit(asset, sender)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	write(w, balanceResponse{Balance: lib.AmountToString(balance)}, http.StatusOK)
}

// HELPERS BELOW

// readJSON() decodes a JSON request body into a pointer
func readJSON(r *http.Request, ptr any) lib.ErrorI {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, int64(units.MB)))
	if err != nil {
		return ErrInvalidRequest(err)
	}
	return lib.UnmarshalJSON(body, ptr)
}

// parseAddress() converts a hex identity string into an address
func parseAddress(s string) (crypto.AddressI, lib.ErrorI) {
	address, err := crypto.NewAddressFromString(s)
	if err != nil || !crypto.AddressIsValid(address.Bytes()) {
		return nil, lib.ErrInvalidAddress(s)
	}
	return address, nil
}

// write() marshals the payload to JSON and writes the response
func write(w http.ResponseWriter, payload any, code int) {
	w.Header().Set(ContentType, ApplicationJSON)
	w.WriteHeader(code)
	bz, _ := lib.MarshalJSONIndent(payload)
	if _, err := w.Write(bz); err != nil {
		fmt.Println(err)
	}
}

// writeErr() writes an ErrorI response with a status derived from its module
func (s *Server) writeErr(w http.ResponseWriter, err lib.ErrorI) {
	code := http.StatusBadRequest
	switch {
	case err.Module() == lib.PoolModule && err.Code() == lib.CodeUnauthorized:
		code = http.StatusUnauthorized
	case err.Module() == lib.StoreModule:
		code = http.StatusInternalServerError
	}
	s.logger.Warnf("rpc request failed: %s", err.Error())
	write(w, err, code)
}
