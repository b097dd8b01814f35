// Package model defines domain models for deposit indexing.
package model

// Customer owns one or more wallet addresses.
type Customer struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	WalletAddresses []string `json:"walletAddresses"`
}

// CustomerData is the shape of a customers feed.
type CustomerData struct {
	Customers []Customer `json:"customers"`
}
