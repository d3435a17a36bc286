package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testResult struct {
	err error
}

func (r *testResult) GetError() error { return r.err }

type testJob struct {
	duration time.Duration
	fail     bool
	executed *int32
}

func (j *testJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &testResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &testResult{err: errors.New("job failed")}
	}
	return &testResult{}
}

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected 1 worker for zero input, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected 1 worker for negative input, got %d", p.workers)
	}
}

func TestPoolExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed int32
	const count = 20
	for i := 0; i < count; i++ {
		pool.Submit(&testJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}
	if n := atomic.LoadInt32(&executed); n != count {
		t.Errorf("expected %d executions, got %d", count, n)
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&testJob{})
	pool.Submit(&testJob{fail: true})
	pool.Submit(&testJob{fail: true})

	results := pool.Wait()
	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("expected 2 failures, got %d", failures)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 2
	pool := NewPool(workers)
	pool.Start()

	var mu sync.Mutex
	current, peak := 0, 0
	job := &gaugeJob{
		enter: func() {
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()
		},
		leave: func() {
			mu.Lock()
			current--
			mu.Unlock()
		},
	}
	for i := 0; i < 10; i++ {
		pool.Submit(job)
	}
	pool.Wait()

	if peak > workers {
		t.Errorf("concurrency peaked at %d, want <= %d", peak, workers)
	}
}

type gaugeJob struct {
	enter, leave func()
}

func (j *gaugeJob) Execute(ctx context.Context) Result {
	j.enter()
	time.Sleep(10 * time.Millisecond)
	j.leave()
	return &testResult{}
}

func TestPoolShutdownCancelsJobs(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	pool.Submit(&testJob{duration: 5 * time.Second})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete in time")
	}
}
