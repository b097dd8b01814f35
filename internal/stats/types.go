package stats

import (
	"context"
	"time"

	"github.com/goodnatureofminers/depositledger/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	TransactionReader interface {
		GetByID(ctx context.Context, txid string) (*model.Transaction, error)
	}
	Metrics interface {
		ObserveStats(bucket string, err error, members int64, started time.Time)
	}
)
