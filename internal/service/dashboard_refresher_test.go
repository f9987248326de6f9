package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ieve-api/internal/models"
)

type countingSource struct {
	calls int
	err   error
}

func (c *countingSource) RefreshDashboard(ctx context.Context) (*models.DashboardSummary, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &models.DashboardSummary{}, nil
}

func TestDashboardRefresherRun(t *testing.T) {
	metrics := NewMetricsService()
	source := &countingSource{}
	refresher, err := NewDashboardRefresher("@every 1m", source, metrics, nil)
	require.NoError(t, err)

	refresher.Run()
	source.err = errors.New("db down")
	refresher.Run()

	assert.Equal(t, 2, source.calls)
	assert.Equal(t, 1.0, counterValue(t, metrics.Registry(), "dashboard_refresh_total", "success"))
	assert.Equal(t, 1.0, counterValue(t, metrics.Registry(), "dashboard_refresh_total", "failure"))
}

func TestDashboardRefresherRejectsBadSchedule(t *testing.T) {
	_, err := NewDashboardRefresher("every minute", &countingSource{}, nil, nil)
	assert.Error(t, err)
}

func TestDashboardRefresherStartStop(t *testing.T) {
	refresher, err := NewDashboardRefresher("@every 1h", &countingSource{}, nil, nil)
	require.NoError(t, err)
	refresher.Start()
	refresher.Stop()
}
