package rpc

import (
	"bytes"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rockpool-network/rockpool/fsm"
	"github.com/rockpool-network/rockpool/lib"
	"github.com/rockpool-network/rockpool/lib/crypto"
)

const (
	transferPath = "/v1/transfer"
	metadataPath = "/v1/metadata"

	maxTransferRetries = 8
)

/*
	Transferer is the client side of the external asset-transfer service: the outbound
	half of swap settlement. Dispatch is fire-and-forget from the state machine's point
	of view; retries live here, never in the core. A terminal delivery failure is logged
	but the ledger entry is NOT restored - the accounting for the outbound leg finalizes
	before the downstream outcome is known
*/

var _ fsm.TransferI = &Transferer{}

// Transferer posts withdrawals to the asset service with exponential backoff
type Transferer struct {
	baseURL string
	client  *http.Client
	log     lib.LoggerI
}

// NewTransferer constructs a transfer client against the configured asset service
func NewTransferer(config lib.Config, log lib.LoggerI) *Transferer {
	return &Transferer{
		baseURL: config.AssetServiceURL,
		client:  &http.Client{Timeout: time.Duration(config.TimeoutS) * time.Second},
		log:     log,
	}
}

type transferRequest struct {
	Destination string `json:"destination"`
	Asset       string `json:"asset"`
	Amount      string `json:"amount"`
}

// Transfer dispatches the asset movement asynchronously and returns immediately
func (t *Transferer) Transfer(destination, asset crypto.AddressI, amount *big.Int) {
	request := transferRequest{
		Destination: destination.String(),
		Asset:       asset.String(),
		Amount:      lib.AmountToString(amount),
	}
	go func() {
		if err := backoff.Retry(func() error {
			return t.post(transferPath, request)
		}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxTransferRetries)); err != nil {
			// the sender's ledger entry stays debited; the accounting finalized before dispatch
			t.log.Error(ErrTransferDispatch(fmt.Errorf("%s %s to %s: %w",
				request.Amount, request.Asset, request.Destination, err)).Error())
		}
	}()
}

// post() sends one JSON request to the asset service, failing on a non-2xx status
func (t *Transferer) post(path string, payload any) error {
	bz, err := lib.MarshalJSON(payload)
	if err != nil {
		return err
	}
	resp, e := t.client.Post(t.baseURL+path, ApplicationJSON, bytes.NewReader(bz))
	if e != nil {
		return e
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("asset service responded with status %d", resp.StatusCode)
	}
	return nil
}

// MetadataClient resolves informational asset metadata from the asset service
type MetadataClient struct {
	baseURL string
	client  *http.Client
}

var _ fsm.MetadataI = &MetadataClient{}

// NewMetadataClient constructs a metadata client against the configured asset service
func NewMetadataClient(config lib.Config) *MetadataClient {
	return &MetadataClient{
		baseURL: config.AssetServiceURL,
		client:  &http.Client{Timeout: time.Duration(config.TimeoutS) * time.Second},
	}
}

// Metadata fetches the metadata of one asset; the caller falls back to defaults on error
func (m *MetadataClient) Metadata(asset crypto.AddressI) (*fsm.AssetMetadata, error) {
	resp, err := m.client.Get(fmt.Sprintf("%s%s?asset=%s", m.baseURL, metadataPath, asset.String()))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset service responded with status %d", resp.StatusCode)
	}
	metadata := new(fsm.AssetMetadata)
	if err = lib.UnmarshalJSONReader(resp.Body, metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}
