// ABOUTME: Caller-facing cooldown windows per operation category.
// ABOUTME: A fairness layer independent of the gateway's internal retries.

package ai

import (
	"sync"
	"time"
)

// Category groups logical operations that share one cooldown window.
type Category string

const (
	// CategoryTools covers the AI-tools bundle: summarize, tags, grammar.
	CategoryTools Category = "ai-tools"
	// CategoryTranslate covers translation requests.
	CategoryTranslate Category = "translate"
)

type cooldownTracker struct {
	mu        sync.Mutex
	deadlines map[Category]time.Time
	now       func() time.Time
}

func newCooldownTracker() *cooldownTracker {
	return &cooldownTracker{
		deadlines: make(map[Category]time.Time),
		now:       time.Now,
	}
}

func (t *cooldownTracker) set(cat Category, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deadlines[cat] = t.now().Add(d)
}

func (t *cooldownTracker) until(cat Category) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deadlines[cat]
}

func (t *cooldownTracker) remaining(cat Category) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := t.deadlines[cat].Sub(t.now())
	if d < 0 {
		return 0
	}
	return d
}
