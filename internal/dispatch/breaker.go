package dispatch

import "sync"

// breaker tracks consecutive failures for one rule id:
// open after N consecutive failures; while open, dispatch short-circuits to
// the fallback without invoking the checker, except for one trial invocation
// let through every trialInterval skipped dispatches; close again after M
// consecutive trial successes. A failed trial starts a fresh interval.
type breaker struct {
	mu               sync.Mutex
	open             bool
	failureCount     int
	successCount     int
	skipped          int
	failureThreshold int
	successThreshold int
	trialInterval    int
}

func newBreaker() *breaker {
	return &breaker{
		failureThreshold: 5,
		successThreshold: 3,
		trialInterval:    10,
	}
}

func (b *breaker) isOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// allow reports whether the caller may invoke the checker. Closed circuits
// always allow; open circuits let one trial invocation through per interval
// so a recovered rule can reclose without a restart.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return true
	}
	b.skipped++
	if b.skipped >= b.trialInterval {
		b.skipped = 0
		return true
	}
	return false
}

// recordFailure returns true when the caller should use the fallback.
func (b *breaker) recordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount++
	b.successCount = 0
	if b.open {
		b.skipped = 0
		return true
	}
	if b.failureCount >= b.failureThreshold {
		b.open = true
		return true
	}
	return false
}

func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.open = false
			b.failureCount = 0
			b.successCount = 0
		}
		return
	}
	b.failureCount = 0
}
