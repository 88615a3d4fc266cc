package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/chain"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/ckb"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/repository/clickhouse"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/service"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/service/watcher"
	"github.com/goodnatureofminers/nervosdao-backend/internal/metrics"
	"github.com/goodnatureofminers/nervosdao-backend/pkg/batcher"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	RPCURL        string        `long:"rpc-url" env:"DAO_WATCHER_RPC_URL" description:"Ledger node JSON-RPC URL (indexer module enabled)" default:"http://127.0.0.1:8114"`
	Network       model.Network `long:"network" env:"DAO_WATCHER_NETWORK" description:"network name" choice:"mainnet" choice:"testnet" default:"mainnet"`
	LockCodeHash  string        `long:"lock-code-hash" env:"DAO_WATCHER_LOCK_CODE_HASH" description:"code hash of the watched lock script" required:"true"`
	LockHashType  string        `long:"lock-hash-type" env:"DAO_WATCHER_LOCK_HASH_TYPE" description:"hash type of the watched lock script" default:"type"`
	LockArgs      string        `long:"lock-args" env:"DAO_WATCHER_LOCK_ARGS" description:"0x-hex args of the watched lock script" required:"true"`
	Interval      time.Duration `long:"interval" env:"DAO_WATCHER_INTERVAL" description:"time between snapshots" default:"30s"`
	RPCRPS        int           `long:"rpc-rps" env:"DAO_WATCHER_RPC_RPS" description:"max node requests per second, 0 disables the limit" default:"20"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"DAO_WATCHER_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"30s"`
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"DAO_WATCHER_CLICKHOUSE_DSN" description:"optional ClickHouse DSN for the persistent header cache"`
	MetricsAddr   string        `long:"metrics-addr" env:"DAO_WATCHER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	PageSize      uint32        `long:"page-size" env:"DAO_WATCHER_PAGE_SIZE" description:"indexer page size" default:"400"`
	CacheSize     int           `long:"cache-size" env:"DAO_WATCHER_CACHE_SIZE" description:"in-memory header cache entries" default:"4096"`
	FlushSize     int           `long:"flush-size" env:"DAO_WATCHER_FLUSH_SIZE" description:"header cache rows per ClickHouse insert" default:"500"`
	FlushInterval time.Duration `long:"flush-interval" env:"DAO_WATCHER_FLUSH_INTERVAL" description:"max age of queued header cache rows" default:"5s"`
	Once          bool          `long:"once" env:"DAO_WATCHER_ONCE" description:"take a single snapshot, log it and exit"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("dao watcher failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	lock, err := parseLock(cfg)
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("network", string(cfg.Network)))

	client, err := ckb.NewClient(
		cfg.RPCURL,
		cfg.Network,
		cfg.HTTPTimeout,
		cfg.RPCRPS,
		metrics.NewRPCClient(cfg.Network),
		logger,
	)
	if err != nil {
		return fmt.Errorf("init ledger client: %w", err)
	}

	// Left as a nil interface when no DSN is configured.
	var headerRepo chain.HeaderRepository
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Network, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if cerr := repo.Close(); cerr != nil {
				logger.Warn("close repository failed", zap.Error(cerr))
			}
		}()
		writer := chain.NewWriteBehind(repo, logger,
			batcher.WithFlushSize(cfg.FlushSize),
			batcher.WithFlushInterval(cfg.FlushInterval),
		)
		writer.Start(ctx)
		defer writer.Stop()
		headerRepo = writer
	}

	headers, err := chain.NewHeaderResolver(client, headerRepo, cfg.CacheSize, logger)
	if err != nil {
		return fmt.Errorf("init header resolver: %w", err)
	}

	dao, err := service.New(
		ctx,
		client,
		headers,
		metrics.NewDaoScanner(cfg.Network),
		logger,
		service.WithPageSize(cfg.PageSize),
	)
	if err != nil {
		return fmt.Errorf("init dao: %w", err)
	}

	svc, err := watcher.New(
		dao,
		client,
		lock,
		metrics.NewWatcher(cfg.Network),
		logger,
		watcher.WithInterval(cfg.Interval),
		watcher.WithHandler(func(_ context.Context, snapshot watcher.Snapshot) error {
			logClaimable(logger, snapshot)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("init watcher: %w", err)
	}

	if cfg.Once {
		snapshot, err := svc.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("take snapshot: %w", err)
		}
		logSnapshot(logger, snapshot)
		return nil
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)
	return svc.Run(ctx)
}

func parseLock(cfg config) (model.Script, error) {
	codeHash, err := hexutil.Decode(cfg.LockCodeHash)
	if err != nil {
		return model.Script{}, fmt.Errorf("parse lock code hash: %w", err)
	}
	if len(codeHash) != common.HashLength {
		return model.Script{}, fmt.Errorf("lock code hash must be %d bytes, got %d", common.HashLength, len(codeHash))
	}
	hashType, err := model.ParseHashType(cfg.LockHashType)
	if err != nil {
		return model.Script{}, fmt.Errorf("parse lock hash type: %w", err)
	}
	args, err := hexutil.Decode(cfg.LockArgs)
	if err != nil {
		return model.Script{}, fmt.Errorf("parse lock args: %w", err)
	}
	return model.Script{
		CodeHash: common.BytesToHash(codeHash),
		HashType: hashType,
		Args:     args,
	}, nil
}

func logClaimable(logger *zap.Logger, snapshot watcher.Snapshot) {
	for _, request := range snapshot.Claimable {
		logger.Info("withdrawal claimable",
			zap.Stringer("out_point", request.Cell().OutPoint),
			zap.Uint64("capacity", request.Cell().Output.Capacity),
			zap.Int64("interest", request.Interests()),
			zap.Stringer("maturity", request.Maturity()),
		)
	}
}

func logSnapshot(logger *zap.Logger, snapshot watcher.Snapshot) {
	for _, deposit := range snapshot.Deposits {
		logger.Info("deposit",
			zap.Stringer("out_point", deposit.Cell().OutPoint),
			zap.Uint64("capacity", deposit.Cell().Output.Capacity),
			zap.Int64("interest", deposit.Interests()),
			zap.Stringer("maturity", deposit.Maturity()),
		)
	}
	for _, request := range snapshot.Requests {
		logger.Info("withdrawal request",
			zap.Stringer("out_point", request.Cell().OutPoint),
			zap.Uint64("capacity", request.Cell().Output.Capacity),
			zap.Int64("interest", request.Interests()),
			zap.Stringer("maturity", request.Maturity()),
		)
	}
	logger.Info("dao portfolio",
		zap.Uint64("tip", snapshot.Tip.Number),
		zap.Stringer("epoch", snapshot.Tip.Epoch),
		zap.Int("claimable", len(snapshot.Claimable)),
		zap.Int64("interest", snapshot.Interest()),
	)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
