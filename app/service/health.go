package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	ComponentServer = "server"
	ComponentMemory = "memory"

	memoryDownRatio = 0.9

	defaultPingTimeout = 5 * time.Second
)

var ErrNoHealthReport = errors.New("no health check has run yet")

type databasePinger interface {
	Ping(ctx context.Context) error
}

type healthRecorder interface {
	Upsert(ctx context.Context, check *entity.HealthCheck) error
}

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type HealthService interface {
	Check(ctx context.Context) *types.HealthReport
	Last() (*types.HealthReport, error)
	CheckDatabase(ctx context.Context) types.ComponentHealth
	CheckRedis(ctx context.Context) types.ComponentHealth
	CheckServer() types.ComponentHealth
	CheckMemory() types.ComponentHealth
	Run(ctx context.Context, interval time.Duration)
}

type healthService struct {
	db            databasePinger
	recorder      healthRecorder
	redis         redisPinger
	env           string
	slowThreshold time.Duration
	startedAt     time.Time
	memStats      func(*runtime.MemStats)

	mu   sync.RWMutex
	last *types.HealthReport
}

type HealthServiceOption func(*healthService)

// WithMemStats replaces the runtime memory reader used by the memory check.
func WithMemStats(read func(*runtime.MemStats)) HealthServiceOption {
	return func(s *healthService) {
		if read != nil {
			s.memStats = read
		}
	}
}

func NewHealthService(
	db databasePinger,
	recorder healthRecorder,
	redisClient redisPinger,
	env string,
	slowThreshold time.Duration,
	opts ...HealthServiceOption,
) HealthService {
	svc := &healthService{
		db:            db,
		recorder:      recorder,
		redis:         redisClient,
		env:           env,
		slowThreshold: slowThreshold,
		startedAt:     time.Now(),
		memStats:      runtime.ReadMemStats,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *healthService) Check(ctx context.Context) *types.HealthReport {
	components := map[string]types.ComponentHealth{
		entity.ComponentDatabase: s.CheckDatabase(ctx),
		entity.ComponentRedis:    s.CheckRedis(ctx),
		ComponentServer:          s.CheckServer(),
		ComponentMemory:          s.CheckMemory(),
	}

	status := types.StatusHealthy
	for _, component := range components {
		if component.Status != types.StatusUp {
			status = types.StatusUnhealthy
			break
		}
	}

	report := &types.HealthReport{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	return report
}

func (s *healthService) Last() (*types.HealthReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return nil, ErrNoHealthReport
	}
	return s.last, nil
}

// CheckDatabase reports down when the ping fails or exceeds the slow threshold.
// The ping is cancelled once the threshold has passed.
func (s *healthService) CheckDatabase(ctx context.Context) types.ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, s.pingTimeout())
	defer cancel()

	start := time.Now()
	err := s.db.Ping(ctx)
	elapsed := time.Since(start)

	result := types.ComponentHealth{Status: types.StatusUp, ResponseTimeMs: elapsed.Milliseconds()}
	if err != nil {
		result.Status = types.StatusDown
		result.Error = err.Error()
		return result
	}
	if s.slowThreshold > 0 && elapsed > s.slowThreshold {
		result.Status = types.StatusDown
		result.Error = "database response time exceeds " + s.slowThreshold.String()
	}
	return result
}

func (s *healthService) CheckRedis(ctx context.Context) types.ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, s.pingTimeout())
	defer cancel()

	start := time.Now()
	err := s.redis.Ping(ctx).Err()

	result := types.ComponentHealth{Status: types.StatusUp, ResponseTimeMs: time.Since(start).Milliseconds()}
	if err != nil {
		result.Status = types.StatusDown
		result.Error = err.Error()
	}
	return result
}

func (s *healthService) pingTimeout() time.Duration {
	if s.slowThreshold > 0 {
		return s.slowThreshold
	}
	return defaultPingTimeout
}

func (s *healthService) CheckServer() types.ComponentHealth {
	return types.ComponentHealth{
		Status: types.StatusUp,
		Details: map[string]interface{}{
			"pid":           os.Getpid(),
			"goVersion":     runtime.Version(),
			"goroutines":    runtime.NumGoroutine(),
			"uptimeSeconds": int64(time.Since(s.startedAt).Seconds()),
			"environment":   s.env,
		},
	}
}

// CheckMemory reports down when more than 90% of the heap is in use.
func (s *healthService) CheckMemory() types.ComponentHealth {
	var stats runtime.MemStats
	s.memStats(&stats)

	ratio := 0.0
	if stats.HeapSys > 0 {
		ratio = float64(stats.HeapInuse) / float64(stats.HeapSys)
	}

	result := types.ComponentHealth{
		Status: types.StatusUp,
		Details: map[string]interface{}{
			"heapInUseBytes": stats.HeapInuse,
			"heapSysBytes":   stats.HeapSys,
			"usageRatio":     ratio,
		},
	}
	if ratio > memoryDownRatio {
		result.Status = types.StatusDown
		result.Error = "heap usage above 90%"
	}
	return result
}

// Run checks immediately and then every interval, persisting the database
// and redis results, until ctx is done.
func (s *healthService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.runOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *healthService) runOnce(ctx context.Context) {
	report := s.Check(ctx)

	logger := logrus.WithField("status", report.Status)
	if report.Healthy() {
		logger.Info("scheduled health check completed")
	} else {
		logger.Warn("scheduled health check reports unhealthy components")
	}

	for _, component := range []string{entity.ComponentDatabase, entity.ComponentRedis} {
		result := report.Components[component]
		details, _ := json.Marshal(result)
		err := s.recorder.Upsert(ctx, &entity.HealthCheck{
			Component:     component,
			Status:        result.Status,
			Details:       string(details),
			LastCheckedAt: report.Timestamp,
		})
		if err != nil && ctx.Err() == nil {
			logrus.WithError(err).WithField("component", component).Error("failed to record health check")
		}
	}
}
