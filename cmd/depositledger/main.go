package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/depositledger/internal/customer"
	"github.com/goodnatureofminers/depositledger/internal/ledger"
	"github.com/goodnatureofminers/depositledger/internal/loader"
	"github.com/goodnatureofminers/depositledger/internal/metrics"
	"github.com/goodnatureofminers/depositledger/internal/model"
	observed "github.com/goodnatureofminers/depositledger/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/depositledger/internal/report"
	"github.com/goodnatureofminers/depositledger/internal/stats"
	"github.com/goodnatureofminers/depositledger/internal/store"
	"github.com/goodnatureofminers/depositledger/internal/store/memory"
	"github.com/goodnatureofminers/depositledger/internal/store/redis"
)

const (
	storeRedis  = "redis"
	storeMemory = "memory"

	pushJob     = "depositledger"
	pushTimeout = 10 * time.Second
)

type config struct {
	RedisURL         string   `long:"redis-url" env:"DEPOSITLEDGER_REDIS_URL" description:"Redis URL" default:"redis://127.0.0.1:6379/0"`
	Store            string   `long:"store" env:"DEPOSITLEDGER_STORE" description:"storage backend" choice:"redis" choice:"memory" default:"redis"`
	Flush            bool     `long:"flush" env:"DEPOSITLEDGER_FLUSH" description:"remove every key before ingesting"`
	CustomersFile    string   `long:"customers-file" env:"DEPOSITLEDGER_CUSTOMERS_FILE" description:"customers feed" default:"customers.json"`
	TransactionFiles []string `long:"transactions-file" env:"DEPOSITLEDGER_TRANSACTIONS_FILES" env-delim:"," description:"transactions feed, may be repeated"`
	ReportFile       string   `long:"report-file" env:"DEPOSITLEDGER_REPORT_FILE" description:"JSON list of {name, address, customerId} report targets, defaults to every loaded customer"`
	RPCURL           string   `long:"rpc-url" env:"DEPOSITLEDGER_RPC_URL" description:"wallet node RPC URL, enables listtransactions ingestion"`
	RPCUser          string   `long:"rpc-user" env:"DEPOSITLEDGER_RPC_USER" description:"wallet node RPC username"`
	RPCPassword      string   `long:"rpc-password" env:"DEPOSITLEDGER_RPC_PASSWORD" description:"wallet node RPC password"`
	RPCPageSize      int      `long:"rpc-page-size" env:"DEPOSITLEDGER_RPC_PAGE_SIZE" description:"listtransactions page size" default:"1000"`
	RPCRPS           int      `long:"rpc-rps" env:"DEPOSITLEDGER_RPC_RPS" description:"max RPC requests per second, 0 disables the limit" default:"10"`
	Network          string   `long:"network" env:"DEPOSITLEDGER_NETWORK" description:"network name used as a metrics label" default:"testnet"`
	PushgatewayURL   string   `long:"pushgateway-url" env:"DEPOSITLEDGER_PUSHGATEWAY_URL" description:"Prometheus Pushgateway URL"`
	ReportWorkers    int      `long:"report-workers" env:"DEPOSITLEDGER_REPORT_WORKERS" description:"concurrent report lookups" default:"4"`
	JSONLogs         bool     `long:"json-logs" env:"DEPOSITLEDGER_JSON_LOGS" description:"production JSON logging"`
}

// backend is a store.Store the entry point owns.
type backend interface {
	store.Store
	Flush(ctx context.Context) error
	Close() error
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		panic("failed to parse flags: " + err.Error())
	}

	logger, err := newLogger(cfg.JSONLogs)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	runErr := run(ctx, cfg, logger)
	if err := pushMetrics(cfg.PushgatewayURL); err != nil {
		logger.Error("failed to push metrics", zap.Error(err))
	}
	if runErr != nil {
		logger.Fatal("depositledger failed", zap.Error(runErr))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	logger.Info("Starting application")

	kv, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()
	if cfg.Flush {
		if err := kv.Flush(ctx); err != nil {
			return fmt.Errorf("flush store: %w", err)
		}
	}

	customers, txs, err := load(ctx, cfg, logger)
	if err != nil {
		return err
	}

	indexMetrics := metrics.NewIndexer()
	index, err := customer.NewIndex(kv, indexMetrics, logger)
	if err != nil {
		return err
	}
	l, err := ledger.New(kv, index, indexMetrics, logger)
	if err != nil {
		return err
	}
	agg, err := stats.NewAggregator(kv, l, indexMetrics, logger)
	if err != nil {
		return err
	}

	if err := index.UpsertAll(ctx, customers); err != nil {
		return fmt.Errorf("write customers: %w", err)
	}
	res, err := l.Ingest(ctx, txs)
	if err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	logger.Info("transactions ingested",
		zap.Int("written", res.Written),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("skipped", res.Skipped),
	)

	targets := report.TargetsFromCustomers(customers)
	if cfg.ReportFile != "" {
		if targets, err = report.ReadTargets(cfg.ReportFile); err != nil {
			return err
		}
	}
	reporter, err := report.NewReporter(index, agg, cfg.ReportWorkers, logger)
	if err != nil {
		return err
	}
	rep, err := reporter.Build(ctx, targets)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	report.Log(logger, rep)
	return nil
}

func openStore(ctx context.Context, cfg config, logger *zap.Logger) (backend, error) {
	switch cfg.Store {
	case storeMemory:
		return memory.New(), nil
	case storeRedis, "":
		s, err := redis.NewStore(ctx, cfg.RedisURL, metrics.NewStore(storeRedis), logger)
		if err != nil {
			return nil, fmt.Errorf("init redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// load reads customers and transactions concurrently.
func load(ctx context.Context, cfg config, logger *zap.Logger) ([]model.Customer, []model.Transaction, error) {
	var (
		wg           sync.WaitGroup
		customers    []model.Customer
		customersErr error
		txs          []model.Transaction
		txsErr       error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		customers, customersErr = loader.ReadCustomers(cfg.CustomersFile)
	}()
	go func() {
		defer wg.Done()
		txs, txsErr = loadTransactions(ctx, cfg, logger)
	}()
	wg.Wait()

	if err := errors.Join(customersErr, txsErr); err != nil {
		return nil, nil, err
	}
	logger.Info("feeds loaded", zap.Int("customers", len(customers)), zap.Int("transactions", len(txs)))
	return customers, txs, nil
}

func loadTransactions(ctx context.Context, cfg config, logger *zap.Logger) ([]model.Transaction, error) {
	txs, err := loader.ReadTransactions(cfg.TransactionFiles...)
	if err != nil {
		return nil, err
	}
	if cfg.RPCURL == "" {
		return txs, nil
	}

	rpc, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return nil, fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	client := observed.NewObservedClient(rpc, metrics.NewRPCClient(cfg.Network))
	src, err := loader.NewNodeSource(client, cfg.RPCPageSize, cfg.RPCRPS, logger)
	if err != nil {
		return nil, err
	}
	nodeTxs, err := src.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	return append(txs, nodeTxs...), nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

// pushMetrics sends the run's collectors to a Pushgateway; a no-op without a URL.
func pushMetrics(gatewayURL string) error {
	if gatewayURL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	return push.New(gatewayURL, pushJob).Gatherer(prometheus.DefaultGatherer).PushContext(ctx)
}
