// Package ledger stores eligible deposits and ranks them into per-owner buckets.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/depositledger/internal/model"
	"github.com/goodnatureofminers/depositledger/internal/store"
	"go.uber.org/zap"
)

// Eligible reports whether tx is a confirmed, positive deposit.
func Eligible(tx model.Transaction) bool {
	return tx.Amount > 0 &&
		tx.Confirmations >= model.MinConfirmations &&
		tx.Category == model.CategoryReceive
}

// Ledger owns transaction records and the ranked buckets.
type Ledger struct {
	kv        *store.Accessor
	customers CustomerResolver
	metrics   Metrics
	logger    *zap.Logger
}

// New builds a Ledger. customers is only read, never written.
func New(s store.Store, customers CustomerResolver, metrics Metrics, logger *zap.Logger) (*Ledger, error) {
	if s == nil {
		return nil, errors.New("ledger store is required")
	}
	if customers == nil {
		return nil, errors.New("ledger customer resolver is required")
	}
	if metrics == nil {
		return nil, errors.New("ledger metrics is required")
	}
	return &Ledger{
		kv:        store.NewAccessor(s),
		customers: customers,
		metrics:   metrics,
		logger:    logger.Named("ledger"),
	}, nil
}

// Ingest processes txs in order. Each eligible, unseen transaction is stored and
// ranked in one atomic batch, so a failure leaves earlier transactions intact.
// On error the counters accumulated so far are returned with it.
func (l *Ledger) Ingest(ctx context.Context, txs []model.Transaction) (res IngestResult, err error) {
	started := time.Now()
	defer func() {
		l.metrics.ObserveIngest(err, res.Written, res.Duplicates, res.Skipped, started)
	}()

	for _, tx := range txs {
		if !Eligible(tx) {
			res.Skipped++
			continue
		}

		written, err := l.ingestOne(ctx, tx)
		if err != nil {
			l.logger.Error("write transaction failed", zap.String("txid", tx.TxID), zap.Error(err))
			return res, fmt.Errorf("ingest transaction %s: %w", tx.TxID, err)
		}
		if written {
			res.Written++
		} else {
			res.Duplicates++
		}
	}

	l.logger.Info("transactions written",
		zap.Int("written", res.Written),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("skipped", res.Skipped),
		zap.Int("total", len(txs)),
	)
	return res, nil
}

func (l *Ledger) ingestOne(ctx context.Context, tx model.Transaction) (bool, error) {
	txKey := TransactionKey(tx.TxID)
	exists, err := l.kv.Store().Exists(ctx, txKey)
	if err != nil {
		return false, err
	}
	if exists {
		l.logger.Debug("duplicate transaction", zap.String("txid", tx.TxID))
		return false, nil
	}

	owner := model.AnonymousOwner
	c, err := l.customers.GetByWallet(ctx, tx.Address)
	if err != nil {
		return false, fmt.Errorf("resolve owner of %s: %w", tx.Address, err)
	}
	if c != nil {
		owner = model.CustomerOwner(c.ID)
	}

	record, err := store.SetJSON(txKey, tx)
	if err != nil {
		return false, err
	}
	ops := []store.Op{
		record,
		store.ZAdd(BucketKey(owner), tx.Amount, tx.TxID),
	}
	if err := l.kv.Store().SubmitBatch(ctx, ops); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID returns the stored transaction or nil when it is unknown.
func (l *Ledger) GetByID(ctx context.Context, txid string) (*model.Transaction, error) {
	var tx model.Transaction
	found, err := l.kv.GetJSON(ctx, TransactionKey(txid), &tx)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", txid, err)
	}
	if !found {
		return nil, nil
	}
	return &tx, nil
}
