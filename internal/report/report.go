// Package report builds the per-customer deposit summary.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/depositledger/internal/model"
	"github.com/goodnatureofminers/depositledger/internal/stats"
	"github.com/goodnatureofminers/depositledger/pkg/workerpool"
	"go.uber.org/zap"
)

const defaultWorkerCount = 4

// ErrCustomerNotFound is returned when a report target's wallet resolves to no customer.
var ErrCustomerNotFound = errors.New("customer not found")

// Target names a customer either by id or by one of its wallet addresses.
// An id takes precedence; the address is then informational only.
type Target struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	CustomerID *int64 `json:"customerId,omitempty"`
}

// CustomerStats is one line of the report.
type CustomerStats struct {
	Target     Target
	CustomerID int64
	Stats      model.Stats
}

// Report is the full deposit summary.
type Report struct {
	Customers []CustomerStats
	Anonymous model.Stats
	Global    model.GlobalStats
}

// Reporter resolves targets and aggregates their buckets.
type Reporter struct {
	customers   CustomerResolver
	stats       StatsSource
	workerCount int
	logger      *zap.Logger
}

// NewReporter builds a Reporter. workerCount <= 0 selects a default.
func NewReporter(customers CustomerResolver, source StatsSource, workerCount int, logger *zap.Logger) (*Reporter, error) {
	if customers == nil {
		return nil, errors.New("reporter customer resolver is required")
	}
	if source == nil {
		return nil, errors.New("reporter stats source is required")
	}
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &Reporter{
		customers:   customers,
		stats:       source,
		workerCount: workerCount,
		logger:      logger.Named("reporter"),
	}, nil
}

// Build computes stats for every target, the anonymous bucket and the global extremes.
// Targets keep their order in the result.
func (r *Reporter) Build(ctx context.Context, targets []Target) (Report, error) {
	lines, err := workerpool.Map(ctx, r.workerCount, targets, r.customerStats)
	if err != nil {
		return Report{}, err
	}

	anonymous, err := r.stats.StatsFor(ctx, model.AnonymousOwner)
	if err != nil {
		return Report{}, fmt.Errorf("anonymous stats: %w", err)
	}

	buckets := make([]model.Stats, 0, len(lines)+1)
	for _, l := range lines {
		buckets = append(buckets, l.Stats)
	}
	buckets = append(buckets, anonymous)

	return Report{
		Customers: lines,
		Anonymous: anonymous,
		Global:    stats.Global(buckets...),
	}, nil
}

func (r *Reporter) customerStats(ctx context.Context, t Target) (CustomerStats, error) {
	id, err := r.resolve(ctx, t)
	if err != nil {
		return CustomerStats{}, err
	}

	st, err := r.stats.StatsFor(ctx, model.CustomerOwner(id))
	if err != nil {
		return CustomerStats{}, fmt.Errorf("stats for %s: %w", t.Name, err)
	}
	return CustomerStats{Target: t, CustomerID: id, Stats: st}, nil
}

func (r *Reporter) resolve(ctx context.Context, t Target) (int64, error) {
	if t.CustomerID != nil {
		return *t.CustomerID, nil
	}
	c, err := r.customers.GetByWallet(ctx, t.Address)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", t.Name, err)
	}
	if c == nil {
		return 0, fmt.Errorf("%s (%s): %w", t.Name, t.Address, ErrCustomerNotFound)
	}
	return c.ID, nil
}

// Log writes the report in its console form.
func Log(logger *zap.Logger, rep Report) {
	for _, c := range rep.Customers {
		logger.Info(fmt.Sprintf("Deposited for %s: count=%d sum=%s", c.Target.Name, c.Stats.Count, formatBTC(c.Stats.Total)),
			zap.Int64("customer_id", c.CustomerID),
		)
	}
	logger.Info(fmt.Sprintf("Deposited without reference: count=%d sum=%s", rep.Anonymous.Count, formatBTC(rep.Anonymous.Total)))

	if !rep.Global.HasDeposits {
		logger.Info("No valid deposits found")
		return
	}
	logger.Info("Smallest valid deposit: " + formatBTC(rep.Global.Smallest))
	logger.Info("Largest valid deposit: " + formatBTC(rep.Global.Largest))
}

func formatBTC(a btcutil.Amount) string {
	return fmt.Sprintf("%.8f", a.ToBTC())
}

// TargetsFromCustomers targets every customer by id, including customers without wallets.
// A customer listed more than once is reported once, under its last entry.
func TargetsFromCustomers(customers []model.Customer) []Target {
	last := make(map[int64]int, len(customers))
	for i, c := range customers {
		last[c.ID] = i
	}

	targets := make([]Target, 0, len(last))
	for i, c := range customers {
		if last[c.ID] != i {
			continue
		}
		t := Target{Name: c.Name, CustomerID: &c.ID}
		if len(c.WalletAddresses) > 0 {
			t.Address = c.WalletAddresses[0]
		}
		targets = append(targets, t)
	}
	return targets
}

// ReadTargets loads a JSON array of {"name", "address"} objects.
func ReadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report targets %s: %w", path, err)
	}
	var targets []Target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("decode report targets %s: %w", path, err)
	}
	return targets, nil
}
