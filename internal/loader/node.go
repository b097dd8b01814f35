package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/depositledger/internal/model"
)

const (
	allAccounts     = "*"
	defaultPageSize = 1000
)

// NodeSource pulls the whole wallet history from a node, one listtransactions page at a time.
type NodeSource struct {
	client   WalletClient
	pageSize int
	limiter  ratelimit.Limiter
	logger   *zap.Logger
}

// NewNodeSource builds a NodeSource. rps <= 0 disables rate limiting.
func NewNodeSource(client WalletClient, pageSize, rps int, logger *zap.Logger) (*NodeSource, error) {
	if client == nil {
		return nil, errors.New("node source client is required")
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &NodeSource{
		client:   client,
		pageSize: pageSize,
		limiter:  limiter,
		logger:   logger.Named("nodeSource"),
	}, nil
}

// Transactions returns every wallet transaction in node order.
func (s *NodeSource) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	for from := 0; ; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.limiter.Take()

		page, err := s.client.ListTransactionsCountFrom(allAccounts, s.pageSize, from)
		if err != nil {
			return nil, fmt.Errorf("list transactions from %d: %w", from, err)
		}
		out = append(out, ConvertTransactions(page)...)
		s.logger.Debug("fetched page", zap.Int("from", from), zap.Int("count", len(page)))

		if len(page) < s.pageSize {
			break
		}
		from += len(page)
	}
	s.logger.Info("wallet history loaded", zap.Int("transactions", len(out)))
	return out, nil
}
