package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/ieve-api/internal/models"
)

type dashboardSource interface {
	RefreshDashboard(ctx context.Context) (*models.DashboardSummary, error)
}

// DashboardRefresher periodically re-warms the cached dashboard summary.
type DashboardRefresher struct {
	cron    *cron.Cron
	source  dashboardSource
	metrics *MetricsService
	logger  *zap.Logger
	timeout time.Duration
}

// NewDashboardRefresher schedules refreshes on schedule, a robfig/cron
// expression such as "@every 1m".
func NewDashboardRefresher(schedule string, source dashboardSource, metrics *MetricsService, logger *zap.Logger) (*DashboardRefresher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &DashboardRefresher{
		cron:    cron.New(),
		source:  source,
		metrics: metrics,
		logger:  logger,
		timeout: 30 * time.Second,
	}
	if _, err := r.cron.AddFunc(schedule, r.Run); err != nil {
		return nil, err
	}
	return r, nil
}

// Run performs a single refresh.
func (r *DashboardRefresher) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	if _, err := r.source.RefreshDashboard(ctx); err != nil {
		r.metrics.RecordDashboardRefresh(false)
		r.logger.Warn("dashboard refresh failed", zap.Error(err))
		return
	}
	r.metrics.RecordDashboardRefresh(true)
	r.logger.Debug("dashboard refreshed", zap.Duration("took", time.Since(start)))
}

// Start begins the schedule in its own goroutine.
func (r *DashboardRefresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *DashboardRefresher) Stop() {
	<-r.cron.Stop().Done()
}
