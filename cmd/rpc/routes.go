package rpc

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RPC Paths
const (
	VersionRoutePath       = "/v1/"
	PoolRoutePath          = "/v1/query/pool"
	ReservesRoutePath      = "/v1/query/reserves"
	DepositRoutePath       = "/v1/query/deposit"
	MetadataRoutePath      = "/v1/query/metadata"
	SwapRoutePath          = "/v1/tx/swap"
	AddLiquidityRoutePath  = "/v1/tx/add-liquidity"
	DepositNotifyRoutePath = "/v1/tx/deposit"
)

// createRouter() builds the API router over the server handlers
func createRouter(s *Server) http.Handler {
	router := httprouter.New()
	router.GET(VersionRoutePath, s.Version)
	router.GET(PoolRoutePath, s.Pool)
	router.GET(ReservesRoutePath, s.Reserves)
	router.POST(DepositRoutePath, s.Deposit)
	router.POST(MetadataRoutePath, s.Metadata)
	router.POST(SwapRoutePath, s.Swap)
	router.POST(AddLiquidityRoutePath, s.AddLiquidity)
	router.POST(DepositNotifyRoutePath, s.DepositNotify)
	return router
}
