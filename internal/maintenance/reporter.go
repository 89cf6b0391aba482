// Package maintenance runs scheduled background jobs against the account store.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/verigate/verigate/internal/store"
	"github.com/verigate/verigate/pkg/logger"
	"github.com/verigate/verigate/pkg/metrics"
)

const defaultSchedule = "@every 1m"

// Reporter periodically publishes the number of unverified accounts to the
// pending-accounts gauge. Pending records never expire, so the gauge is the
// only visibility into signups that were never completed.
type Reporter struct {
	accounts store.AccountStore
	cron     *cron.Cron
	schedule string
	timeout  time.Duration
	log      *zap.Logger
}

// Option customises the Reporter.
type Option func(*Reporter)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(r *Reporter) {
		if c != nil {
			r.cron = c
		}
	}
}

// WithSchedule overrides the cron specification for the pending report.
func WithSchedule(spec string) Option {
	return func(r *Reporter) {
		if spec != "" {
			r.schedule = spec
		}
	}
}

// WithQueryTimeout bounds each store query issued by the reporter.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewReporter builds a Reporter over the given store.
func NewReporter(accounts store.AccountStore, opts ...Option) (*Reporter, error) {
	if accounts == nil {
		return nil, errors.New("maintenance: store is required")
	}

	reporter := &Reporter{
		accounts: accounts,
		cron:     cron.New(),
		schedule: defaultSchedule,
		timeout:  10 * time.Second,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(reporter)
	}

	return reporter, nil
}

// Start registers the report job and begins the schedule.
func (r *Reporter) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.RunOnce(ctx); err != nil {
			r.log.Warn("pending account report failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("maintenance: schedule %q: %w", r.schedule, err)
	}

	r.cron.Start()
	return nil
}

// Stop halts the schedule and returns once running jobs have finished.
func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce refreshes the pending-accounts gauge immediately.
func (r *Reporter) RunOnce(ctx context.Context) error {
	count, err := r.accounts.CountPending(ctx)
	if err != nil {
		return err
	}

	metrics.PendingAccounts.Set(float64(count))
	return nil
}
