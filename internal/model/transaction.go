package model

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

const (
	// MinConfirmations is the confirmation depth a deposit needs before it is indexed.
	MinConfirmations = 6
	// CategoryReceive is the only wallet category that counts as a deposit.
	CategoryReceive = "receive"
)

// Transaction is a single wallet transaction entry as reported by listtransactions.
type Transaction struct {
	InvolvesWatchOnly bool     `json:"involvesWatchonly"`
	Account           string   `json:"account"`
	Address           string   `json:"address"`
	Category          string   `json:"category"`
	Amount            float64  `json:"amount"`
	Label             string   `json:"label"`
	Confirmations     int64    `json:"confirmations"`
	BlockHash         string   `json:"blockhash"`
	BlockIndex        int64    `json:"blockindex"`
	BlockTime         int64    `json:"blocktime"`
	TxID              string   `json:"txid"`
	Vout              uint32   `json:"vout"`
	WalletConflicts   []string `json:"walletconflicts"`
	Time              int64    `json:"time"`
	TimeReceived      int64    `json:"timereceived"`
	BIP125Replaceable string   `json:"bip125-replaceable"`
}

// TransactionData is the shape of a transactions feed.
type TransactionData struct {
	Transactions []Transaction `json:"transactions"`
}

// BtcToAmount converts a BTC value to an exact satoshi amount.
func BtcToAmount(value float64) (btcutil.Amount, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return amt, nil
}
