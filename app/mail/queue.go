package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Handler processes one job. A non-nil error schedules a retry until the
// job runs out of attempts.
type Handler func(ctx context.Context, job *Job) error

type QueueOption func(*Queue)

const defaultLeaseTTL = 30 * time.Second

// WithClock replaces the time source used for backoff scheduling.
func WithClock(now func() time.Time) QueueOption {
	return func(q *Queue) {
		if now != nil {
			q.now = now
		}
	}
}

// WithWorkerID fixes the identity this queue reserves jobs under.
func WithWorkerID(id string) QueueOption {
	return func(q *Queue) {
		if id != "" {
			q.workerID = id
		}
	}
}

// Queue is an at-least-once job queue stored in Redis:
//
//	<name>:wait                  list of ready jobs
//	<name>:delayed               zset of retries scored by ready-at millis
//	<name>:failed                list of jobs that ran out of attempts
//	<name>:workers               set of registered worker ids
//	<name>:active:<worker>       list of jobs reserved by one worker
//	<name>:heartbeat:<worker>    key that expires when the worker stops beating
//
// A worker's reserved jobs go back to the wait list only after its heartbeat
// has expired.
type Queue struct {
	client      redis.Cmdable
	name        string
	workerID    string
	maxAttempts int
	backoff     time.Duration
	leaseTTL    time.Duration
	now         func() time.Time
}

func NewQueue(client redis.Cmdable, cfg config.QueueConfig, opts ...QueueOption) *Queue {
	q := &Queue{
		client:      client,
		name:        cfg.Name,
		workerID:    uuid.New().String(),
		maxAttempts: cfg.Attempts,
		backoff:     cfg.Backoff,
		leaseTTL:    cfg.LeaseTTL,
		now:         time.Now,
	}
	if q.maxAttempts < 1 {
		q.maxAttempts = 1
	}
	if q.leaseTTL <= 0 {
		q.leaseTTL = defaultLeaseTTL
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// WorkerID identifies the jobs reserved through this queue.
func (q *Queue) WorkerID() string {
	return q.workerID
}

func (q *Queue) waitKey() string    { return q.name + ":wait" }
func (q *Queue) delayedKey() string { return q.name + ":delayed" }
func (q *Queue) failedKey() string  { return q.name + ":failed" }
func (q *Queue) workersKey() string { return q.name + ":workers" }
func (q *Queue) activeKey() string  { return q.activeKeyFor(q.workerID) }

func (q *Queue) activeKeyFor(workerID string) string {
	return q.name + ":active:" + workerID
}

func (q *Queue) heartbeatKeyFor(workerID string) string {
	return q.name + ":heartbeat:" + workerID
}

// Enqueue stores a new job. The caller sees an error only when the job
// could not be persisted.
func (q *Queue) Enqueue(ctx context.Context, name string, payload interface{}) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", name, err)
	}

	job := &Job{
		ID:          uuid.New().String(),
		Name:        name,
		Payload:     raw,
		MaxAttempts: q.maxAttempts,
		CreatedAt:   q.now().UTC(),
	}

	encoded, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}
	if err = q.client.RPush(ctx, q.waitKey(), encoded).Err(); err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", name, err)
	}

	return job, nil
}

// Backoff returns the delay applied after the given number of failed attempts.
func (q *Queue) Backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return q.backoff * time.Duration(1<<uint(attempts-1))
}

// PromoteDue moves delayed jobs whose ready time has passed back to the wait list.
func (q *Queue) PromoteDue(ctx context.Context, now time.Time) (int, error) {
	due, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, err
	}

	promoted := 0
	for _, member := range due {
		removed, err := q.client.ZRem(ctx, q.delayedKey(), member).Result()
		if err != nil {
			return promoted, err
		}
		// another worker already took it
		if removed == 0 {
			continue
		}
		if err = q.client.RPush(ctx, q.waitKey(), member).Err(); err != nil {
			return promoted, err
		}
		promoted++
	}

	return promoted, nil
}

// Heartbeat renews this worker's lease and registers it.
func (q *Queue) Heartbeat(ctx context.Context) error {
	if err := q.client.Set(ctx, q.heartbeatKeyFor(q.workerID), q.now().UTC().Format(time.RFC3339), q.leaseTTL).Err(); err != nil {
		return err
	}
	return q.client.SAdd(ctx, q.workersKey(), q.workerID).Err()
}

// RecoverStale returns the jobs reserved by workers whose heartbeat has
// expired to the wait list and forgets those workers.
func (q *Queue) RecoverStale(ctx context.Context) (int, error) {
	workers, err := q.client.SMembers(ctx, q.workersKey()).Result()
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, workerID := range workers {
		if workerID == q.workerID {
			continue
		}
		alive, err := q.client.Exists(ctx, q.heartbeatKeyFor(workerID)).Result()
		if err != nil {
			return recovered, err
		}
		if alive > 0 {
			continue
		}

		n, err := q.drain(ctx, q.activeKeyFor(workerID))
		recovered += n
		if err != nil {
			return recovered, err
		}
		if err = q.client.SRem(ctx, q.workersKey(), workerID).Err(); err != nil {
			return recovered, err
		}
		logrus.WithField("queue", q.name).WithField("worker_id", workerID).WithField("count", n).Info("recovered jobs from stale worker")
	}

	return recovered, nil
}

// release hands back anything this worker still holds and unregisters it.
func (q *Queue) release(ctx context.Context) error {
	if _, err := q.drain(ctx, q.activeKey()); err != nil {
		return err
	}
	if err := q.client.Del(ctx, q.heartbeatKeyFor(q.workerID)).Err(); err != nil {
		return err
	}
	return q.client.SRem(ctx, q.workersKey(), q.workerID).Err()
}

func (q *Queue) drain(ctx context.Context, key string) (int, error) {
	moved := 0
	for {
		err := q.client.LMove(ctx, key, q.waitKey(), "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}

// ProcessNext handles at most one ready job without blocking. It reports
// whether a job was taken.
func (q *Queue) ProcessNext(ctx context.Context, handler Handler) (bool, error) {
	if err := q.Heartbeat(ctx); err != nil {
		return false, err
	}
	if _, err := q.PromoteDue(ctx, q.now()); err != nil {
		return false, err
	}

	raw, err := q.client.LMove(ctx, q.waitKey(), q.activeKey(), "LEFT", "RIGHT").Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, q.handle(ctx, raw, handler)
}

// Run starts concurrency workers that block on the wait list for up to
// pollInterval between delayed-job promotions. The lease is renewed in the
// background. It returns when ctx is done.
func (q *Queue) Run(ctx context.Context, handler Handler, concurrency int, pollInterval time.Duration) {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}

	logger := logrus.WithField("queue", q.name).WithField("worker_id", q.workerID)
	if err := q.Heartbeat(ctx); err != nil {
		logger.WithError(err).Error("failed to register worker")
	}
	q.recover(ctx, logger)

	beatDone := make(chan struct{})
	go func() {
		defer close(beatDone)
		q.keepAlive(ctx, logger)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.loop(ctx, handler, pollInterval)
		}()
	}
	wg.Wait()
	<-beatDone

	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.release(releaseCtx); err != nil {
		logger.WithError(err).Error("failed to release worker")
	}
}

func (q *Queue) keepAlive(ctx context.Context, logger *logrus.Entry) {
	interval := q.leaseTTL / 3
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := q.Heartbeat(ctx); err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("failed to renew worker lease")
		}
		q.recover(ctx, logger)
	}
}

func (q *Queue) recover(ctx context.Context, logger *logrus.Entry) {
	n, err := q.RecoverStale(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.WithError(err).Error("failed to recover stale jobs")
		}
		return
	}
	if n > 0 {
		logger.WithField("count", n).Info("recovered interrupted jobs")
	}
}

func (q *Queue) loop(ctx context.Context, handler Handler, pollInterval time.Duration) {
	for ctx.Err() == nil {
		if _, err := q.PromoteDue(ctx, q.now()); err != nil && ctx.Err() == nil {
			logrus.WithError(err).WithField("queue", q.name).Error("failed to promote delayed jobs")
		}

		raw, err := q.client.BLMove(ctx, q.waitKey(), q.activeKey(), "LEFT", "RIGHT", pollInterval).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logrus.WithError(err).WithField("queue", q.name).Error("failed to reserve job")
			sleep(ctx, pollInterval)
			continue
		}

		if err = q.handle(ctx, raw, handler); err != nil {
			logrus.WithError(err).WithField("queue", q.name).Error("failed to settle job")
		}
	}
}

func (q *Queue) handle(ctx context.Context, raw string, handler Handler) error {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		// unreadable entries cannot be retried
		if rmErr := q.client.LRem(ctx, q.activeKey(), 1, raw).Err(); rmErr != nil {
			return rmErr
		}
		return q.client.RPush(ctx, q.failedKey(), raw).Err()
	}

	logger := logrus.WithField("job_id", job.ID).WithField("job_name", job.Name).WithField("attempt", job.Attempts+1)

	handleErr := handler(ctx, &job)
	if handleErr == nil {
		logger.Debug("job completed")
		return q.client.LRem(ctx, q.activeKey(), 1, raw).Err()
	}

	job.Attempts++
	job.LastError = handleErr.Error()
	encoded, err := json.Marshal(&job)
	if err != nil {
		return err
	}

	if job.Attempts >= job.MaxAttempts {
		logger.WithError(handleErr).Error("job failed permanently")
		if err = q.client.RPush(ctx, q.failedKey(), encoded).Err(); err != nil {
			return err
		}
		return q.client.LRem(ctx, q.activeKey(), 1, raw).Err()
	}

	delay := q.Backoff(job.Attempts)
	logger.WithError(handleErr).WithField("retry_in", delay.String()).Warn("job failed, scheduling retry")
	readyAt := q.now().Add(delay).UnixMilli()
	if err = q.client.ZAdd(ctx, q.delayedKey(), redis.Z{Score: float64(readyAt), Member: string(encoded)}).Err(); err != nil {
		return err
	}
	return q.client.LRem(ctx, q.activeKey(), 1, raw).Err()
}

// Failed returns up to limit jobs that exhausted their attempts, oldest first.
func (q *Queue) Failed(ctx context.Context, limit int64) ([]*Job, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := q.client.LRange(ctx, q.failedKey(), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	jobs := make([]*Job, 0, len(entries))
	for _, entry := range entries {
		var job Job
		if err := json.Unmarshal([]byte(entry), &job); err != nil {
			job = Job{Name: "unreadable", LastError: err.Error()}
		}
		jobs = append(jobs, &job)
	}
	return jobs, nil
}

// RetryFailed moves every failed job back to the wait list with a fresh
// attempt budget.
func (q *Queue) RetryFailed(ctx context.Context) (int, error) {
	retried := 0
	for {
		entry, err := q.client.LPop(ctx, q.failedKey()).Result()
		if errors.Is(err, redis.Nil) {
			return retried, nil
		}
		if err != nil {
			return retried, err
		}

		var job Job
		if err := json.Unmarshal([]byte(entry), &job); err != nil {
			logrus.WithError(err).WithField("queue", q.name).Warn("dropping unreadable failed job")
			continue
		}
		job.Attempts = 0
		job.LastError = ""
		job.MaxAttempts = q.maxAttempts

		encoded, err := json.Marshal(&job)
		if err != nil {
			return retried, err
		}
		if err = q.client.RPush(ctx, q.waitKey(), encoded).Err(); err != nil {
			return retried, err
		}
		retried++
	}
}

// Counts reports the number of jobs per state. Active covers every
// registered worker.
func (q *Queue) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 4)
	for state, key := range map[string]string{
		"wait":   q.waitKey(),
		"failed": q.failedKey(),
	} {
		n, err := q.client.LLen(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		counts[state] = n
	}

	workers, err := q.client.SMembers(ctx, q.workersKey()).Result()
	if err != nil {
		return nil, err
	}
	counts["active"] = 0
	for _, workerID := range workers {
		n, err := q.client.LLen(ctx, q.activeKeyFor(workerID)).Result()
		if err != nil {
			return nil, err
		}
		counts["active"] += n
	}

	n, err := q.client.ZCard(ctx, q.delayedKey()).Result()
	if err != nil {
		return nil, err
	}
	counts["delayed"] = n
	return counts, nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
