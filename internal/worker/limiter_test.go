package worker

import (
	"context"
	"testing"
	"time"
)

// ready reports whether key can proceed without waiting
func ready(l *Limiter, key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	return l.Wait(ctx, key) == nil
}

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 20; i++ {
		if !ready(limiter, "openai") {
			t.Fatalf("expected unlimited limiter to allow call %d", i)
		}
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "ollama"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	if !ready(limiter, "openai") {
		t.Fatal("expected the first call to pass")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "openai"); err == nil {
		t.Error("expected error when the deadline is shorter than the next token")
	}
}

func TestLimiter_PerKey(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if err := limiter.Wait(context.Background(), "openai"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	if ready(limiter, "openai") {
		t.Error("expected second call to be throttled (exhausted tokens)")
	}
	if ready(limiter, " OpenAI ") {
		t.Error("expected keys to be normalized")
	}

	if !ready(limiter, "ollama") {
		t.Error("expected another provider to pass")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetRate("Ollama", 0.1, 1)

	if !ready(limiter, "ollama") {
		t.Error("first call should pass")
	}
	if ready(limiter, "ollama") {
		t.Error("second call should be throttled")
	}
	if !ready(limiter, "openai") {
		t.Error("other provider should pass")
	}
}
