package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewImportLimiter_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		wait    time.Duration
		wantMax int
	}{
		{"explicit", 3, time.Second, 3},
		{"zero falls back", 0, 0, DefaultMaxConcurrentImports},
		{"negative falls back", -2, -time.Second, DefaultMaxConcurrentImports},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewImportLimiter(tt.max, tt.wait)
			want := LimiterStatus{Active: 0, Available: tt.wantMax, MaxConcurrent: tt.wantMax}
			if got := l.Status(); got != want {
				t.Errorf("Status() = %+v, want %+v", got, want)
			}
			if tt.wait <= 0 && l.maxWait != DefaultMaxWaitTime {
				t.Errorf("maxWait = %v, want %v", l.maxWait, DefaultMaxWaitTime)
			}
		})
	}
}

func TestImportLimiter_StatusTracksSlots(t *testing.T) {
	l := NewImportLimiter(2, time.Second)

	if !l.TryAcquire() {
		t.Fatal("TryAcquire() on an idle limiter = false")
	}
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got := l.Status(); got.Active != 2 || got.Available != 0 {
		t.Errorf("Status() with both slots taken = %+v", got)
	}
	if l.TryAcquire() {
		t.Error("TryAcquire() on a full limiter = true")
	}

	l.Release()
	l.Release()
	if got := l.Status(); got.Active != 0 || got.Available != 2 {
		t.Errorf("Status() after release = %+v", got)
	}
}

func TestImportLimiter_AcquireFailures(t *testing.T) {
	tests := []struct {
		name    string
		ctx     func() (context.Context, context.CancelFunc)
		wantErr error
	}{
		{
			name:    "wait limit reached",
			ctx:     func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			wantErr: ErrTooManyImports,
		},
		{
			name: "caller cancelled",
			ctx: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				time.AfterFunc(10*time.Millisecond, cancel)
				return ctx, cancel
			},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewImportLimiter(1, 50*time.Millisecond)
			if !l.TryAcquire() {
				t.Fatal("TryAcquire() on an idle limiter = false")
			}
			defer l.Release()

			ctx, cancel := tt.ctx()
			defer cancel()

			if err := l.Acquire(ctx); !errors.Is(err, tt.wantErr) {
				t.Errorf("Acquire() error = %v, want %v", err, tt.wantErr)
			}
			if got := l.ActiveCount(); got != 1 {
				t.Errorf("ActiveCount() after failed Acquire = %d, want 1", got)
			}
		})
	}
}

func TestImportLimiter_NeverExceedsMax(t *testing.T) {
	const slots = 2
	l := NewImportLimiter(slots, 5*time.Second)

	var inFlight, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			defer l.Release()

			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
		}()
	}
	wg.Wait()

	if p := peak.Load(); p > slots {
		t.Errorf("peak in-flight parses = %d, want <= %d", p, slots)
	}
}

func TestImportLimiter_WaitForDrain(t *testing.T) {
	l := NewImportLimiter(1, time.Second)
	if err := l.WaitForDrain(context.Background()); err != nil {
		t.Fatalf("WaitForDrain() on an idle limiter error = %v", err)
	}

	l.TryAcquire()
	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.WaitForDrain(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain() with a busy slot error = %v, want DeadlineExceeded", err)
	}

	time.AfterFunc(20*time.Millisecond, l.Release)
	if err := l.WaitForDrain(context.Background()); err != nil {
		t.Errorf("WaitForDrain() error = %v", err)
	}
}
