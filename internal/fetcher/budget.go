package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ExhaustedError is returned by Acquire when the rate limit budget would only
// free up after the configured maximum wait.
type ExhaustedError struct {
	Until time.Time
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("github request budget exhausted until %s", e.Until.UTC().Format(time.RFC3339))
}

// RequestBudget tracks the GitHub rate limit across all assessments served by
// one process. It is updated from response headers and gates every request.
type RequestBudget struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	now       func() time.Time
	probed    bool
	cooldown  time.Time
	notifyCh  chan struct{}
	// maxWait bounds how long Acquire blocks for a cooldown or reset; zero
	// means wait for as long as ctx allows.
	maxWait time.Duration
}

type BudgetOption func(*RequestBudget)

// WithMaxWait makes Acquire fail fast with *ExhaustedError instead of blocking
// longer than d.
func WithMaxWait(d time.Duration) BudgetOption {
	return func(b *RequestBudget) {
		b.maxWait = d
	}
}

func NewRequestBudget(opts ...BudgetOption) *RequestBudget {
	b := &RequestBudget{
		// Unauthenticated clients get 60/h; the first response corrects this.
		remaining: 60,
		reset:     time.Now().Add(1 * time.Hour),
		now:       time.Now,
		notifyCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *RequestBudget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

// Reset returns the time the current rate limit window ends.
func (b *RequestBudget) Reset() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reset
}

func (b *RequestBudget) Acquire(ctx context.Context, n int) error {
	if ctx == nil {
		return fmt.Errorf("Acquire: nil context")
	}
	if n <= 0 {
		return fmt.Errorf("Acquire: n must be > 0 (got %d)", n)
	}
	if b == nil {
		return fmt.Errorf("Acquire: nil RequestBudget")
	}
	if b.now == nil {
		return fmt.Errorf("Acquire: RequestBudget.now is nil (use NewRequestBudget)")
	}
	if b.notifyCh == nil {
		return fmt.Errorf("Acquire: RequestBudget.notifyCh is nil (use NewRequestBudget)")
	}

	for i := 0; i < n; i++ {
		if err := b.acquireOne(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *RequestBudget) acquireOne(ctx context.Context) error {
	for {
		b.mu.Lock()
		now := b.now()

		if now.Before(b.cooldown) {
			until := b.cooldown
			ch := b.notifyCh
			b.mu.Unlock()

			if err := b.wait(ctx, ch, now, until); err != nil {
				return err
			}
			continue
		}

		if b.remaining > 0 {
			b.remaining--
			b.mu.Unlock()
			return nil
		}

		// Reset has passed but no refreshed budget was observed yet: allow
		// exactly one probe request, then block until UpdateFromResponse.
		if !now.Before(b.reset) {
			if !b.probed {
				b.probed = true
				b.mu.Unlock()
				return nil
			}
			ch := b.notifyCh
			b.mu.Unlock()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ch:
				continue
			}
		}

		reset := b.reset
		ch := b.notifyCh
		b.mu.Unlock()

		if err := b.wait(ctx, ch, now, reset); err != nil {
			return err
		}
	}
}

// wait blocks until until, a budget change, or ctx is done.
func (b *RequestBudget) wait(ctx context.Context, ch <-chan struct{}, now, until time.Time) error {
	d := until.Sub(now)
	if d < 0 {
		d = 0
	}
	if b.maxWait > 0 && d > b.maxWait {
		return &ExhaustedError{Until: until}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	case <-timer.C:
		return nil
	}
}

func (b *RequestBudget) signalLocked() {
	if b.notifyCh == nil {
		b.notifyCh = make(chan struct{})
		return
	}
	close(b.notifyCh)
	b.notifyCh = make(chan struct{})
}

func (b *RequestBudget) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if b == nil {
		return
	}
	if b.now == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			until := b.now().Add(time.Duration(seconds) * time.Second)
			if until.After(b.cooldown) {
				b.cooldown = until
				changed = true
			}
		}
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil && val >= 0 {
			if b.remaining != val {
				b.remaining = val
				changed = true
			}
		}
	}

	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil && val > 0 {
			newReset := time.Unix(val, 0)
			if !b.reset.Equal(newReset) {
				b.reset = newReset
				changed = true
			}
		}
	}

	if changed {
		b.probed = false
		b.signalLocked()
	}
}
