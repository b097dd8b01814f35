// Package loader reads customers and wallet transactions from feed files or a wallet node.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/depositledger/internal/model"
)

type transactionFeed struct {
	Transactions []btcjson.ListTransactionsResult `json:"transactions"`
}

// ReadCustomers loads a {"customers": [...]} feed.
func ReadCustomers(path string) ([]model.Customer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read customers %s: %w", path, err)
	}
	var feed model.CustomerData
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("decode customers %s: %w", path, err)
	}
	return feed.Customers, nil
}

// ReadTransactions loads {"transactions": [...]} feeds and concatenates them in argument order.
func ReadTransactions(paths ...string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read transactions %s: %w", path, err)
		}
		var feed transactionFeed
		if err := json.Unmarshal(data, &feed); err != nil {
			return nil, fmt.Errorf("decode transactions %s: %w", path, err)
		}
		out = append(out, ConvertTransactions(feed.Transactions)...)
	}
	return out, nil
}
