// Package budget enforces the local spend and rate limits for the gateway.
// Admission is checked before any network attempt; nothing is charged for a
// call that the budget rejects or that later fails upstream.
package budget

import (
	"fmt"
	"sync"
	"time"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
	"github.com/HeyElsa/elsa-openclaw/internal/pricing"
)

// retention is how long call records are kept before lazy pruning. The daily
// window is computed on UTC day boundaries, so anything older than a full day
// can never contribute to it again.
const retention = 24 * time.Hour

// statusTail is how many recent calls a Status snapshot includes.
const statusTail = 10

// Governor tracks charged calls and answers admission checks against the
// daily spend cap and the per-minute rate cap.
//
// Check followed by Record is deliberately not atomic across the network
// round-trip: cost is only known to be spent once the call succeeds, so
// concurrent in-flight calls may transiently over-commit by up to
// (concurrency x per-call cost).
type Governor struct {
	costs    *pricing.Table
	dailyCap float64
	rateCap  int

	mu      sync.Mutex
	history []models.CallRecord

	now func() time.Time // swapped out in tests
}

// NewGovernor creates a governor with the given caps. dailyCapUSD is the
// maximum total estimated spend per UTC day; callsPerMinute caps the trailing
// 60-second call count.
func NewGovernor(costs *pricing.Table, dailyCapUSD float64, callsPerMinute int) *Governor {
	return &Governor{
		costs:    costs,
		dailyCap: dailyCapUSD,
		rateCap:  callsPerMinute,
		now:      time.Now,
	}
}

// Check returns a *models.BudgetExceededError if one more call to endpoint
// would break either cap. It has no side effects and must be called before
// any network attempt.
func (g *Governor) Check(endpoint string) error {
	projected := g.costs.CostOf(endpoint)

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	g.pruneLocked(now)

	spent := g.spentTodayLocked(now)
	if spent+projected > g.dailyCap {
		return &models.BudgetExceededError{
			Kind:     models.CapDaily,
			Endpoint: endpoint,
			Detail: fmt.Sprintf("spent $%.4f today, call costs $%.4f, cap is $%.2f",
				spent, projected, g.dailyCap),
		}
	}

	recent := g.callsLastMinuteLocked(now)
	if recent+1 > g.rateCap {
		return &models.BudgetExceededError{
			Kind:     models.CapRate,
			Endpoint: endpoint,
			Detail:   fmt.Sprintf("%d calls in the last minute, cap is %d/min", recent, g.rateCap),
		}
	}
	return nil
}

// Record charges costUSD against the budget. Only called after a call has
// succeeded; failed calls are never recorded.
func (g *Governor) Record(endpoint string, costUSD float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.history = append(g.history, models.CallRecord{
		Timestamp: g.now().UTC(),
		Endpoint:  endpoint,
		CostUSD:   costUSD,
	})
}

// Status returns a consistent snapshot of the current budget window.
func (g *Governor) Status() models.BudgetStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	g.pruneLocked(now)

	spent := g.spentTodayLocked(now)
	tail := g.history
	if len(tail) > statusTail {
		tail = tail[len(tail)-statusTail:]
	}
	last := make([]models.CallRecord, len(tail))
	copy(last, tail)

	remaining := g.dailyCap - spent
	if remaining < 0 {
		remaining = 0
	}
	return models.BudgetStatus{
		SpentTodayUSD:     spent,
		RemainingTodayUSD: remaining,
		CallsLastMinute:   g.callsLastMinuteLocked(now),
		LastCalls:         last,
	}
}

// DailyCapUSD reports the configured daily cap.
func (g *Governor) DailyCapUSD() float64 { return g.dailyCap }

// RateCap reports the configured per-minute cap.
func (g *Governor) RateCap() int { return g.rateCap }

func (g *Governor) pruneLocked(now time.Time) {
	cutoff := now.Add(-retention)
	i := 0
	for i < len(g.history) && !g.history[i].Timestamp.After(cutoff) {
		i++
	}
	if i > 0 {
		g.history = append([]models.CallRecord(nil), g.history[i:]...)
	}
}

func (g *Governor) spentTodayLocked(now time.Time) float64 {
	dayStart := now.Truncate(24 * time.Hour)
	var spent float64
	for _, rec := range g.history {
		if !rec.Timestamp.Before(dayStart) {
			spent += rec.CostUSD
		}
	}
	return spent
}

func (g *Governor) callsLastMinuteLocked(now time.Time) int {
	cutoff := now.Add(-time.Minute)
	count := 0
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].Timestamp.Before(cutoff) {
			break
		}
		count++
	}
	return count
}
