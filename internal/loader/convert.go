package loader

import (
	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/depositledger/internal/model"
)

// ConvertTransaction maps a listtransactions entry onto the stored record.
func ConvertTransaction(r btcjson.ListTransactionsResult) model.Transaction {
	tx := model.Transaction{
		InvolvesWatchOnly: r.InvolvesWatchOnly,
		Account:           r.Account,
		Address:           r.Address,
		Category:          r.Category,
		Amount:            r.Amount,
		Confirmations:     r.Confirmations,
		BlockHash:         r.BlockHash,
		BlockTime:         r.BlockTime,
		TxID:              r.TxID,
		Vout:              r.Vout,
		WalletConflicts:   r.WalletConflicts,
		Time:              r.Time,
		TimeReceived:      r.TimeReceived,
		BIP125Replaceable: r.BIP125Replaceable,
	}
	if r.BlockIndex != nil {
		tx.BlockIndex = *r.BlockIndex
	}
	if r.Label != nil {
		tx.Label = *r.Label
	}
	return tx
}

func ConvertTransactions(results []btcjson.ListTransactionsResult) []model.Transaction {
	out := make([]model.Transaction, 0, len(results))
	for _, r := range results {
		out = append(out, ConvertTransaction(r))
	}
	return out
}
