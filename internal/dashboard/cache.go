package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedPipeline memoises successful results of another Pipeline until Invalidate is called.
// Errors are never cached. Safe for concurrent use.
type CachedPipeline struct {
	next     Pipeline
	location *time.Location
	logger   *logger.Logger

	mu sync.RWMutex
	// generation changes on Invalidate; fills started before it are not stored
	generation uint64
	dashboards map[string]*types.Dashboard
	analyses   map[string]*types.TechnicalAnalysis
	group      singleflight.Group
}

var _ Pipeline = (*CachedPipeline)(nil)

// NewCachedPipeline wraps next. Analysis dates are keyed by their civil day in loc.
func NewCachedPipeline(next Pipeline, loc *time.Location, log *logger.Logger) *CachedPipeline {
	if loc == nil {
		loc = time.UTC
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &CachedPipeline{
		next:       next,
		location:   loc,
		logger:     log.Named("cache"),
		dashboards: make(map[string]*types.Dashboard),
		analyses:   make(map[string]*types.TechnicalAnalysis),
	}
}

// GetDashboard returns a cached overview or computes and stores one.
func (c *CachedPipeline) GetDashboard(ctx context.Context, assetID string, lookbackDays int) (*types.Dashboard, error) {
	key := fmt.Sprintf("dashboard/%s/%d", assetID, lookbackDays)

	c.mu.RLock()
	cached, ok := c.dashboards[key]
	generation := c.generation
	c.mu.RUnlock()

	if ok {
		c.logger.Debug("Cache hit", zap.String("key", key))

		return cached, nil
	}

	return shared(ctx, c, key, generation, func(ctx context.Context) (*types.Dashboard, error) {
		result, err := c.next.GetDashboard(ctx, assetID, lookbackDays)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation == generation {
			c.dashboards[key] = result
		}
		c.mu.Unlock()

		return result, nil
	})
}

// GetTechnicalAnalysis returns a cached analysis for date's civil day or computes and stores one.
func (c *CachedPipeline) GetTechnicalAnalysis(ctx context.Context, date time.Time) (*types.TechnicalAnalysis, error) {
	key := "analysis/" + date.In(c.location).Format(time.DateOnly)

	c.mu.RLock()
	cached, ok := c.analyses[key]
	generation := c.generation
	c.mu.RUnlock()

	if ok {
		c.logger.Debug("Cache hit", zap.String("key", key))

		return cached, nil
	}

	return shared(ctx, c, key, generation, func(ctx context.Context) (*types.TechnicalAnalysis, error) {
		result, err := c.next.GetTechnicalAnalysis(ctx, date)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation == generation {
			c.analyses[key] = result
		}
		c.mu.Unlock()

		return result, nil
	})
}

// shared runs fill once per key and generation for all concurrent callers. The fill is
// detached from the cancellation of whichever caller started it, and each caller stops
// waiting when its own ctx is done.
func shared[T any](ctx context.Context, c *CachedPipeline, key string, generation uint64, fill func(context.Context) (T, error)) (T, error) {
	detached := context.WithoutCancel(ctx)

	results := c.group.DoChan(fmt.Sprintf("%s@%d", key, generation), func() (any, error) {
		return fill(detached)
	})

	var zero T

	select {
	case <-ctx.Done():
		c.logger.Debug("Caller left before the shared fill finished", zap.String("key", key), zap.Error(ctx.Err()))

		return zero, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return zero, result.Err
		}

		return result.Val.(T), nil
	}
}

// Invalidate drops every cached result.
func (c *CachedPipeline) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := len(c.dashboards) + len(c.analyses)
	c.generation++
	c.dashboards = make(map[string]*types.Dashboard)
	c.analyses = make(map[string]*types.TechnicalAnalysis)

	c.logger.Info("Cache invalidated", zap.Int("entries", dropped))
}

// Len returns the number of cached results.
func (c *CachedPipeline) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.dashboards) + len(c.analyses)
}
