package report

import (
	"context"

	"github.com/goodnatureofminers/depositledger/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	CustomerResolver interface {
		GetByWallet(ctx context.Context, address string) (*model.Customer, error)
	}
	StatsSource interface {
		StatsFor(ctx context.Context, owner model.BucketOwner) (model.Stats, error)
	}
)
