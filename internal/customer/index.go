// Package customer maintains the customer profiles and the wallet to customer mapping.
package customer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/depositledger/internal/model"
	"github.com/goodnatureofminers/depositledger/internal/store"
	"go.uber.org/zap"
)

const (
	customerKeyPrefix = "customer:"
	walletKeyPrefix   = "wallet:"
)

// ErrCorruptMapping is returned when a wallet mapping does not hold a customer id.
var ErrCorruptMapping = errors.New("corrupt wallet mapping")

// CustomerKey is the key of a customer profile.
func CustomerKey(id int64) string {
	return customerKeyPrefix + strconv.FormatInt(id, 10)
}

// WalletKey is the key of a wallet to customer mapping.
func WalletKey(address string) string {
	return walletKeyPrefix + address
}

// Index owns customer and wallet mapping records.
type Index struct {
	kv      *store.Accessor
	metrics Metrics
	logger  *zap.Logger
}

// NewIndex builds an Index over s.
func NewIndex(s store.Store, metrics Metrics, logger *zap.Logger) (*Index, error) {
	if s == nil {
		return nil, errors.New("customer index store is required")
	}
	if metrics == nil {
		return nil, errors.New("customer index metrics is required")
	}
	return &Index{
		kv:      store.NewAccessor(s),
		metrics: metrics,
		logger:  logger.Named("customerIndex"),
	}, nil
}

// UpsertAll writes every profile and wallet mapping in a single atomic batch.
// When several customers claim the same address the later one wins.
// Addresses dropped from a re-ingested profile stop resolving to it.
func (i *Index) UpsertAll(ctx context.Context, customers []model.Customer) (err error) {
	started := time.Now()
	defer func() {
		i.metrics.ObserveUpsert(err, len(customers), started)
	}()

	if len(customers) == 0 {
		return nil
	}

	ops, err := i.staleMappings(ctx, customers)
	if err != nil {
		return err
	}
	released := len(ops)

	wallets := 0
	for _, c := range customers {
		op, err := store.SetJSON(CustomerKey(c.ID), c)
		if err != nil {
			return fmt.Errorf("customer %d: %w", c.ID, err)
		}
		ops = append(ops, op)

		id := strconv.FormatInt(c.ID, 10)
		for _, address := range c.WalletAddresses {
			ops = append(ops, store.Set(WalletKey(address), id))
			wallets++
		}
	}

	if err = i.kv.Store().SubmitBatch(ctx, ops); err != nil {
		i.logger.Error("write customers failed", zap.Int("customers", len(customers)), zap.Error(err))
		return fmt.Errorf("write customers: %w", err)
	}

	i.logger.Info("customers written",
		zap.Int("customers", len(customers)),
		zap.Int("wallets", wallets),
		zap.Int("released", released),
	)
	return nil
}

// staleMappings removes wallet mappings that a customer's stored profile lists but
// the incoming one no longer does, unless the mapping was already taken over or
// another customer in the batch claims the address.
func (i *Index) staleMappings(ctx context.Context, customers []model.Customer) ([]store.Op, error) {
	claimed := make(map[string]struct{})
	for _, c := range customers {
		for _, address := range c.WalletAddresses {
			claimed[address] = struct{}{}
		}
	}

	ops := make([]store.Op, 0, len(customers)*2)
	for _, c := range customers {
		prev, err := i.GetByID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			continue
		}
		id := strconv.FormatInt(c.ID, 10)
		for _, address := range prev.WalletAddresses {
			if _, ok := claimed[address]; ok {
				continue
			}
			owner, found, err := i.kv.Store().GetString(ctx, WalletKey(address))
			if err != nil {
				return nil, fmt.Errorf("get wallet %s: %w", address, err)
			}
			if found && owner == id {
				ops = append(ops, store.Del(WalletKey(address)))
			}
		}
	}
	return ops, nil
}

// GetByID returns the customer or nil when it is unknown.
func (i *Index) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	found, err := i.kv.GetJSON(ctx, CustomerKey(id), &c)
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// GetByWallet resolves the owner of address, or nil when either the mapping or the profile is missing.
func (i *Index) GetByWallet(ctx context.Context, address string) (*model.Customer, error) {
	raw, found, err := i.kv.Store().GetString(ctx, WalletKey(address))
	if err != nil {
		return nil, fmt.Errorf("get wallet %s: %w", address, err)
	}
	if !found {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("wallet %s maps to %q: %w", address, raw, ErrCorruptMapping)
	}
	return i.GetByID(ctx, id)
}
