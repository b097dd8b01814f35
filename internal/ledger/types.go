package ledger

import (
	"context"
	"time"

	"github.com/goodnatureofminers/depositledger/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	CustomerResolver interface {
		GetByWallet(ctx context.Context, address string) (*model.Customer, error)
	}
	Metrics interface {
		ObserveIngest(err error, written, duplicates, skipped int, started time.Time)
	}
)

// IngestResult counts the outcome of an ingestion run.
type IngestResult struct {
	Written    int
	Duplicates int
	Skipped    int
}
