// Package retry wraps a single remote call with bounded, rate-limit-aware retries.
//
// Rate limiting is the only failure mode absorbed automatically. Everything
// else (auth, malformed request, network partition) is not self-healing and
// propagates on the first attempt so configuration bugs surface immediately.
package retry

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrExhausted is returned when every attempt was rate-limited. It is
// distinct from the underlying transport error so callers can alert on
// sustained quota pressure separately from a persistent fault.
var ErrExhausted = errors.New("max retries reached")

// maxBackoff caps the exponential fallback delay.
const maxBackoff = 30 * time.Second

// RateLimitError marks a transient rate-limit failure. Provider clients wrap
// their 429 responses in this type; any other error is treated as fatal.
type RateLimitError struct {
	Message string
	Err     error
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rate limited: %s", e.Message)
	}
	return "rate limited"
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// waitHintRe matches the server-suggested wait embedded in rate-limit
// messages, e.g. "Please try again in 558ms".
var waitHintRe = regexp.MustCompile(`try again in (\d+)\s*ms`)

// parseWaitHint extracts the suggested wait from a rate-limit message.
func parseWaitHint(msg string) (time.Duration, bool) {
	m := waitHintRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	ms, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

// backoffDelay returns min(2^attempt, 30) seconds.
func backoffDelay(attempt int) time.Duration {
	if attempt >= 5 {
		return maxBackoff
	}
	d := time.Duration(1<<uint(attempt)) * time.Second
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// Retrier executes calls with bounded retries on rate-limit errors.
type Retrier struct {
	MaxAttempts int
	Log         *zap.Logger

	// Sleep is swapped in tests to observe delays without waiting.
	Sleep func(ctx context.Context, d time.Duration) error
}

func New(maxAttempts int, log *zap.Logger) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Retrier{
		MaxAttempts: maxAttempts,
		Log:         log,
		Sleep:       sleepCtx,
	}
}

// Do invokes call until it succeeds, fails fatally, or MaxAttempts is spent.
//
// On a rate-limit error it honors the server's "try again in NNNms" hint when
// present, otherwise falls back to exponential backoff capped at 30s. No
// sleep is taken after the final attempt.
func (r *Retrier) Do(ctx context.Context, call func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.MaxAttempts; attempt++ {
		out, err := call()
		if err == nil {
			return out, nil
		}

		var rl *RateLimitError
		if !errors.As(err, &rl) {
			r.Log.Error("non-rate-limit error during API call", zap.Error(err))
			return "", err
		}
		lastErr = err
		r.Log.Warn("rate limit hit",
			zap.Int("attempt", attempt),
			zap.String("detail", rl.Message))

		if attempt == r.MaxAttempts-1 {
			break
		}

		wait, suggested := parseWaitHint(rl.Message)
		if suggested {
			r.Log.Warn("waiting per API suggestion", zap.Duration("wait", wait))
		} else {
			wait = backoffDelay(attempt)
			r.Log.Warn("retrying with exponential backoff", zap.Duration("wait", wait))
		}
		if err := r.Sleep(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w after %d attempts: %v", ErrExhausted, r.MaxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
