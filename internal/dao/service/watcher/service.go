// Package watcher periodically re-projects a lock's DAO portfolio against the ledger tip.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/daocell"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"go.uber.org/zap"
)

const (
	DefaultInterval   = 30 * time.Second
	DefaultBackoff    = 5 * time.Second
	DefaultMaxBackoff = 5 * time.Minute
)

// Snapshot is the portfolio of one lock as seen at Tip.
type Snapshot struct {
	Tip       model.Header
	Deposits  []daocell.Deposit
	Requests  []daocell.WithdrawalRequest
	Claimable []daocell.WithdrawalRequest
}

// Interest sums the interest of every deposit and pending request, saturating at int64 bounds.
func (s Snapshot) Interest() int64 {
	var total int64
	for _, d := range s.Deposits {
		total = saturatingAdd(total, d.Interests())
	}
	for _, r := range s.Requests {
		total = saturatingAdd(total, r.Interests())
	}
	return total
}

func saturatingAdd(a, b int64) int64 {
	sum := a + b
	switch {
	case a > 0 && b > 0 && sum < 0:
		return 1<<63 - 1
	case a < 0 && b < 0 && sum >= 0:
		return -1 << 63
	}
	return sum
}

// Handler receives every successful snapshot. A handler error counts as a failed iteration.
type Handler func(ctx context.Context, snapshot Snapshot) error

type Option func(*Service)

func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithBackoff sets the first and the largest wait after failed iterations.
func WithBackoff(initial, maxBackoff time.Duration) Option {
	return func(s *Service) {
		if initial > 0 {
			s.backoff = initial
		}
		if maxBackoff >= s.backoff {
			s.maxBackoff = maxBackoff
		}
	}
}

func WithHandler(h Handler) Option {
	return func(s *Service) {
		s.handler = h
	}
}

// Service watches the DAO cells of a single lock.
type Service struct {
	scanner    DaoScanner
	tips       TipSource
	lock       model.Script
	metrics    Metrics
	handler    Handler
	logger     *zap.Logger
	sleep      func(context.Context, time.Duration) error
	interval   time.Duration
	backoff    time.Duration
	maxBackoff time.Duration
}

// New builds a watcher for lock.
func New(
	scanner DaoScanner,
	tips TipSource,
	lock model.Script,
	metrics Metrics,
	logger *zap.Logger,
	opts ...Option,
) (*Service, error) {
	if scanner == nil {
		return nil, errors.New("dao scanner is required")
	}
	if tips == nil {
		return nil, errors.New("tip source is required")
	}
	if metrics == nil {
		return nil, errors.New("watcher metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		scanner:    scanner,
		tips:       tips,
		lock:       lock,
		metrics:    metrics,
		logger:     logger.Named("watcher"),
		sleep:      sleepWithContext,
		interval:   DefaultInterval,
		backoff:    DefaultBackoff,
		maxBackoff: DefaultMaxBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Snapshot reads the tip and the lock's DAO cells, ordered by maturity.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	started := time.Now()
	snapshot, err := s.snapshot(ctx)
	s.metrics.ObserveSnapshot(err, len(snapshot.Deposits), len(snapshot.Requests), len(snapshot.Claimable), started)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *Service) snapshot(ctx context.Context) (Snapshot, error) {
	tip, err := s.tips.TipHeader(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch tip header: %w", err)
	}

	snapshot := Snapshot{Tip: tip}
	for deposit, err := range s.scanner.FindDeposits(ctx, s.lock, &tip) {
		if err != nil {
			return Snapshot{}, fmt.Errorf("find deposits: %w", err)
		}
		snapshot.Deposits = append(snapshot.Deposits, deposit)
	}
	for request, err := range s.scanner.FindWithdrawalRequests(ctx, s.lock) {
		if err != nil {
			return Snapshot{}, fmt.Errorf("find withdrawal requests: %w", err)
		}
		snapshot.Requests = append(snapshot.Requests, request)
	}

	daocell.SortByMaturity(snapshot.Deposits)
	daocell.SortByMaturity(snapshot.Requests)
	for _, request := range snapshot.Requests {
		if daocell.IsMature(request, tip.Epoch) {
			snapshot.Claimable = append(snapshot.Claimable, request)
		}
	}
	return snapshot, nil
}

// Run takes a snapshot every interval until ctx ends. Failed iterations are
// retried with a doubling back-off and never stop the loop.
func (s *Service) Run(ctx context.Context) error {
	backoff := s.backoff
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := s.interval
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("watch iteration failed, backing off", zap.Error(err), zap.Duration("sleep", backoff))
			wait = backoff
			backoff = min(backoff*2, s.maxBackoff)
		} else {
			backoff = s.backoff
		}

		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.Uint64("tip", snapshot.Tip.Number),
		zap.Stringer("epoch", snapshot.Tip.Epoch),
		zap.Int("deposits", len(snapshot.Deposits)),
		zap.Int("requests", len(snapshot.Requests)),
		zap.Int("claimable", len(snapshot.Claimable)),
		zap.Int64("interest", snapshot.Interest()),
	}
	if len(snapshot.Requests) > 0 {
		fields = append(fields, zap.Stringer("next_maturity", snapshot.Requests[0].Maturity()))
	}
	s.logger.Info("dao portfolio", fields...)

	if s.handler != nil {
		if err := s.handler(ctx, snapshot); err != nil {
			return fmt.Errorf("handle snapshot: %w", err)
		}
	}
	return nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
