package ratelimit

import (
	"sync"
	"testing"
	"time"

	"gatehouse/internal/platform/testkit"
)

// clock is a manual time source for deterministic window math
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, max int, window time.Duration) (*Limiter, *clock) {
	t.Helper()
	l := New("test", Config{Max: max, Window: window})
	c := newClock()
	l.now = c.now
	return l, c
}

func TestAdmit_BudgetExhaustion(t *testing.T) {
	l, _ := newTestLimiter(t, 5, time.Minute)

	for i := 0; i < 5; i++ {
		if !l.Admit("agent") {
			t.Fatalf("call %d should be admitted", i+1)
		}
	}
	if l.Admit("agent") {
		t.Fatal("sixth call should be rejected")
	}
}

func TestAdmit_RejectionDoesNotCharge(t *testing.T) {
	l, _ := newTestLimiter(t, 2, time.Minute)

	l.Admit("agent")
	l.Admit("agent")

	// hammer past the budget; the count must stay at the cap
	for i := 0; i < 10; i++ {
		if l.Admit("agent") {
			t.Fatal("over-budget call admitted")
		}
	}
	if got := l.Count("agent"); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
}

func TestAdmit_WindowSlides(t *testing.T) {
	l, c := newTestLimiter(t, 2, time.Minute)

	l.Admit("agent")
	c.advance(30 * time.Second)
	l.Admit("agent")
	if l.Admit("agent") {
		t.Fatal("third call inside window should be rejected")
	}

	// first stamp ages out, freeing exactly one slot
	c.advance(31 * time.Second)
	if !l.Admit("agent") {
		t.Fatal("call should be admitted after oldest stamp expired")
	}
	if l.Admit("agent") {
		t.Fatal("budget should be exhausted again")
	}
}

func TestAdmit_IdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)

	if !l.Admit("a") {
		t.Fatal("first caller should be admitted")
	}
	if !l.Admit("b") {
		t.Fatal("second caller should have its own budget")
	}
	if l.Admit("a") {
		t.Fatal("first caller should be out of budget")
	}
}

func TestCount_DoesNotMutate(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)

	l.Admit("agent")
	for i := 0; i < 5; i++ {
		if got := l.Count("agent"); got != 1 {
			t.Fatalf("count = %d, want 1", got)
		}
	}
	if got := l.Count("stranger"); got != 0 {
		t.Fatalf("unknown identity count = %d, want 0", got)
	}
}

func TestSweep_DropsIdleIdentities(t *testing.T) {
	l, c := newTestLimiter(t, 5, time.Minute)

	l.Admit("idle")
	c.advance(30 * time.Second)
	l.Admit("active")

	// idle is beyond 2x window, active is not
	c.advance(2*time.Minute - 15*time.Second)
	l.Sweep()

	if got := l.Size(); got != 1 {
		t.Fatalf("size after sweep = %d, want 1", got)
	}

	// a swept identity starts fresh
	if !l.Admit("idle") {
		t.Fatal("swept identity should be admitted again")
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	testkit.MustPanic(t, func() { New("bad", Config{Max: 0, Window: time.Minute}) })
	testkit.MustPanic(t, func() { New("bad", Config{Max: 1, Window: 0}) })
}

func TestAdmit_Concurrent(t *testing.T) {
	l := New("concurrent", Config{Max: 50, Window: time.Minute})

	var wg sync.WaitGroup
	admitted := make([]int, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if l.Admit("agent") {
					admitted[g]++
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, n := range admitted {
		total += n
	}
	if total != 50 {
		t.Fatalf("admitted %d calls, want exactly 50", total)
	}
}
