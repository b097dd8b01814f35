package rpcclient

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// WalletClient is the subset of *rpcclient.Client used for wallet history.
	WalletClient interface {
		ListTransactionsCountFrom(account string, count, from int) ([]btcjson.ListTransactionsResult, error)
	}

	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// ObservedClient records metrics for every wallet RPC call.
type ObservedClient struct {
	client     WalletClient
	rpcMetrics RPCMetrics
}

func NewObservedClient(client WalletClient, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) ListTransactionsCountFrom(account string, count, from int) (res []btcjson.ListTransactionsResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("list_transactions", err, started)
	}()
	return r.client.ListTransactionsCountFrom(account, count, from)
}
