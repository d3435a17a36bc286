package worker

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(10, 5)
	if l.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", l.defaultBurst)
	}
	if l2 := NewLimiter(10, -1); l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiterIndependentKeys(t *testing.T) {
	l := NewLimiter(100, 1)
	ctx := context.Background()

	if err := l.Wait(ctx, "llm"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := l.Wait(ctx, "graph_rag"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiterThrottles(t *testing.T) {
	l := NewLimiter(20, 1) // 20 rps, burst 1: second call waits ~50ms
	ctx := context.Background()

	if err := l.Wait(ctx, "llm"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}
	start := time.Now()
	if err := l.Wait(ctx, "llm"); err != nil {
		t.Fatalf("second wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected throttled wait, elapsed %v", elapsed)
	}
}

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(1, 1)
	if !l.Allow("llm") {
		t.Error("first call should be allowed")
	}
	if l.Allow("llm") {
		t.Error("second immediate call should be denied")
	}
	if !l.Allow("other") {
		t.Error("other key should have its own budget")
	}
}

func TestLimiterSetRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetRate("fast", 1000, 10)

	for i := 0; i < 5; i++ {
		if !l.Allow("fast") {
			t.Fatalf("call %d denied despite raised limit", i)
		}
	}
}

func TestLimiterWaitWithDelay(t *testing.T) {
	l := NewLimiter(100, 1)
	start := time.Now()
	if err := l.WaitWithDelay(context.Background(), "llm", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := NewLimiter(0.1, 1) // one call per 10s
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "llm"); err != nil {
		t.Fatalf("burst call failed: %v", err)
	}
	if err := l.Wait(ctx, "llm"); err == nil {
		t.Error("expected context error on throttled wait")
	}
}
