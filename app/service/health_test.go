package service_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeDBPinger struct {
	err   error
	delay time.Duration
}

func (p *fakeDBPinger) Ping(context.Context) error {
	time.Sleep(p.delay)
	return p.err
}

// blockingDBPinger never answers on its own, like a hung connection.
type blockingDBPinger struct{}

func (blockingDBPinger) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

type fakeRecorder struct {
	checks []*entity.HealthCheck
}

func (r *fakeRecorder) Upsert(_ context.Context, check *entity.HealthCheck) error {
	r.checks = append(r.checks, check)
	return nil
}

func steadyMemStats(stats *runtime.MemStats) {
	stats.HeapInuse = 40 << 20
	stats.HeapSys = 100 << 20
}

func newRedisClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestHealthService_CheckHealthy(t *testing.T) {
	client, _ := newRedisClient(t)
	svc := service.NewHealthService(&fakeDBPinger{}, &fakeRecorder{}, client, "test", 5*time.Second, service.WithMemStats(steadyMemStats))

	if _, err := svc.Last(); !errors.Is(err, service.ErrNoHealthReport) {
		t.Fatalf("expected ErrNoHealthReport before first check, got %v", err)
	}

	report := svc.Check(context.Background())
	if report.Status != types.StatusHealthy {
		t.Fatalf("expected healthy report, got %+v", report)
	}
	for _, component := range []string{entity.ComponentDatabase, entity.ComponentRedis, service.ComponentServer, service.ComponentMemory} {
		if _, ok := report.Components[component]; !ok {
			t.Fatalf("missing component %s", component)
		}
	}

	last, err := svc.Last()
	if err != nil || last != report {
		t.Fatalf("expected last report to be stored, got %v %v", last, err)
	}
}

func TestHealthService_ComponentFailures(t *testing.T) {
	client, mr := newRedisClient(t)
	db := &fakeDBPinger{err: errors.New("connection refused")}
	svc := service.NewHealthService(db, &fakeRecorder{}, client, "test", 5*time.Second, service.WithMemStats(steadyMemStats))

	mr.Close()

	report := svc.Check(context.Background())
	if report.Status != types.StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %s", report.Status)
	}
	if report.Components[entity.ComponentDatabase].Status != types.StatusDown || report.Components[entity.ComponentDatabase].Error == "" {
		t.Fatalf("expected database down: %+v", report.Components[entity.ComponentDatabase])
	}
	if report.Components[entity.ComponentRedis].Status != types.StatusDown {
		t.Fatalf("expected redis down: %+v", report.Components[entity.ComponentRedis])
	}
}

func TestHealthService_SlowDatabaseIsDown(t *testing.T) {
	client, _ := newRedisClient(t)
	svc := service.NewHealthService(&fakeDBPinger{delay: 20 * time.Millisecond}, &fakeRecorder{}, client, "test", time.Millisecond, service.WithMemStats(steadyMemStats))

	if got := svc.CheckDatabase(context.Background()); got.Status != types.StatusDown {
		t.Fatalf("expected slow database to be down, got %+v", got)
	}
}

func TestHealthService_RunRecordsComponents(t *testing.T) {
	client, _ := newRedisClient(t)
	recorder := &fakeRecorder{}
	svc := service.NewHealthService(&fakeDBPinger{}, recorder, client, "test", 5*time.Second, service.WithMemStats(steadyMemStats))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Run(ctx, time.Hour)

	if len(recorder.checks) != 2 {
		t.Fatalf("expected two recorded components, got %d", len(recorder.checks))
	}
	if recorder.checks[0].Component != entity.ComponentDatabase || recorder.checks[1].Component != entity.ComponentRedis {
		t.Fatalf("unexpected components: %+v", recorder.checks)
	}
}

func TestHealthService_MemoryPressureIsUnhealthy(t *testing.T) {
	client, _ := newRedisClient(t)
	svc := service.NewHealthService(&fakeDBPinger{}, &fakeRecorder{}, client, "test", 5*time.Second,
		service.WithMemStats(func(stats *runtime.MemStats) {
			stats.HeapInuse = 95
			stats.HeapSys = 100
		}))

	report := svc.Check(context.Background())
	if report.Healthy() || report.Components[service.ComponentMemory].Status != types.StatusDown {
		t.Fatalf("expected memory pressure to mark the report unhealthy: %+v", report)
	}
}

func TestHealthService_HungDatabaseTimesOut(t *testing.T) {
	client, _ := newRedisClient(t)
	svc := service.NewHealthService(blockingDBPinger{}, &fakeRecorder{}, client, "test", 50*time.Millisecond, service.WithMemStats(steadyMemStats))

	done := make(chan types.ComponentHealth, 1)
	go func() {
		done <- svc.CheckDatabase(context.Background())
	}()

	select {
	case got := <-done:
		if got.Status != types.StatusDown || got.Error == "" {
			t.Fatalf("expected hung database to be reported down, got %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("database check did not return after the slow threshold")
	}
}

func TestHealthService_ServerAndMemoryComponents(t *testing.T) {
	client, _ := newRedisClient(t)
	svc := service.NewHealthService(&fakeDBPinger{}, &fakeRecorder{}, client, "staging", 5*time.Second, service.WithMemStats(steadyMemStats))

	server := svc.CheckServer()
	if server.Status != types.StatusUp || server.Details["environment"] != "staging" {
		t.Fatalf("unexpected server component: %+v", server)
	}

	memory := svc.CheckMemory()
	if memory.Status != types.StatusUp || memory.Details["usageRatio"] != 0.4 {
		t.Fatalf("unexpected memory component: %+v", memory)
	}
}
