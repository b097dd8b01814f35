package loader

import "github.com/btcsuite/btcd/btcjson"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	WalletClient interface {
		ListTransactionsCountFrom(account string, count, from int) ([]btcjson.ListTransactionsResult, error)
	}
)
