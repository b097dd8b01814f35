// Package stats derives deposit statistics from the ranked buckets.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/depositledger/internal/ledger"
	"github.com/goodnatureofminers/depositledger/internal/model"
	"github.com/goodnatureofminers/depositledger/internal/store"
	"go.uber.org/zap"
)

// FetchChunkSize bounds how many records a single pipelined fetch loads during the sum scan.
const FetchChunkSize = 500

// ErrInconsistentBucket is returned when a ranked member disagrees with its stored record.
var ErrInconsistentBucket = errors.New("bucket inconsistent with transaction records")

// Aggregator computes count, sum, min and max of a bucket.
type Aggregator struct {
	kv        *store.Accessor
	txs       TransactionReader
	metrics   Metrics
	chunkSize int
	logger    *zap.Logger
}

// NewAggregator builds an Aggregator reading buckets from s and records through txs.
func NewAggregator(s store.Store, txs TransactionReader, metrics Metrics, logger *zap.Logger) (*Aggregator, error) {
	if s == nil {
		return nil, errors.New("aggregator store is required")
	}
	if txs == nil {
		return nil, errors.New("aggregator transaction reader is required")
	}
	if metrics == nil {
		return nil, errors.New("aggregator metrics is required")
	}
	return &Aggregator{
		kv:        store.NewAccessor(s),
		txs:       txs,
		metrics:   metrics,
		chunkSize: FetchChunkSize,
		logger:    logger.Named("aggregator"),
	}, nil
}

// StatsFor returns the statistics of owner's bucket. An empty bucket yields zero stats.
func (a *Aggregator) StatsFor(ctx context.Context, owner model.BucketOwner) (st model.Stats, err error) {
	started := time.Now()
	defer func() {
		a.metrics.ObserveStats(bucketLabel(owner), err, st.Count, started)
	}()

	key := ledger.BucketKey(owner)
	count, err := a.kv.Store().ZCard(ctx, key)
	if err != nil {
		return model.Stats{}, fmt.Errorf("count %s: %w", owner, err)
	}
	if count == 0 {
		return model.Stats{}, nil
	}

	minAmount, err := a.edge(ctx, key, a.kv.Store().ZFirst)
	if err != nil {
		return model.Stats{}, fmt.Errorf("min of %s: %w", owner, err)
	}
	maxAmount, err := a.edge(ctx, key, a.kv.Store().ZLast)
	if err != nil {
		return model.Stats{}, fmt.Errorf("max of %s: %w", owner, err)
	}
	total, err := a.sum(ctx, key)
	if err != nil {
		return model.Stats{}, fmt.Errorf("sum of %s: %w", owner, err)
	}

	return model.Stats{
		Count: count,
		Total: total,
		Min:   minAmount,
		Max:   maxAmount,
	}, nil
}

// edge resolves the record behind the lowest or highest ranked member and checks it against the score.
func (a *Aggregator) edge(
	ctx context.Context,
	key string,
	query func(context.Context, string) (store.ScoredMember, bool, error),
) (btcutil.Amount, error) {
	entry, found, err := query(ctx, key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	tx, err := a.txs.GetByID(ctx, entry.Member)
	if err != nil {
		return 0, err
	}
	if tx == nil {
		return 0, fmt.Errorf("%w: %s ranked without a record", ErrInconsistentBucket, entry.Member)
	}
	if tx.Amount != entry.Score {
		a.logger.Error("bucket score disagrees with record",
			zap.String("bucket", key),
			zap.String("txid", entry.Member),
			zap.Float64("score", entry.Score),
			zap.Float64("amount", tx.Amount),
		)
		return 0, fmt.Errorf("%w: %s scored %v but recorded %v", ErrInconsistentBucket, entry.Member, entry.Score, tx.Amount)
	}
	return model.BtcToAmount(tx.Amount)
}

// sum scans every member, fetching records in pipelined chunks.
func (a *Aggregator) sum(ctx context.Context, key string) (btcutil.Amount, error) {
	members, err := a.kv.Store().ZRangeAll(ctx, key)
	if err != nil {
		return 0, err
	}

	var total btcutil.Amount
	keys := make([]string, 0, min(len(members), a.chunkSize))
	for start := 0; start < len(members); start += a.chunkSize {
		chunk := members[start:min(start+a.chunkSize, len(members))]

		keys = keys[:0]
		for _, txid := range chunk {
			keys = append(keys, ledger.TransactionKey(txid))
		}
		raws, err := a.kv.Store().GetStrings(ctx, keys)
		if err != nil {
			return 0, err
		}

		for i, raw := range raws {
			if raw == "" {
				return 0, fmt.Errorf("%w: %s ranked without a record", ErrInconsistentBucket, chunk[i])
			}
			var tx model.Transaction
			if err := json.Unmarshal([]byte(raw), &tx); err != nil {
				return 0, fmt.Errorf("decode %s: %w", keys[i], err)
			}
			amount, err := model.BtcToAmount(tx.Amount)
			if err != nil {
				return 0, fmt.Errorf("amount of %s: %w", chunk[i], err)
			}
			total += amount
		}
	}
	return total, nil
}

// Global combines bucket statistics into the smallest and largest deposit, ignoring empty buckets.
func Global(buckets ...model.Stats) model.GlobalStats {
	var g model.GlobalStats
	for _, b := range buckets {
		if b.Empty() {
			continue
		}
		if !g.HasDeposits {
			g = model.GlobalStats{Smallest: b.Min, Largest: b.Max, HasDeposits: true}
			continue
		}
		g.Smallest = min(g.Smallest, b.Min)
		g.Largest = max(g.Largest, b.Max)
	}
	return g
}

func bucketLabel(owner model.BucketOwner) string {
	if owner.IsAnonymous() {
		return "anonymous"
	}
	return "customer"
}
