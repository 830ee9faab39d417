// Package pricing holds the static per-call cost estimates used for budget
// admission. Lookups never fail: unknown endpoints fall back to a default
// cost so the admission check stays total.
package pricing

import (
	"sort"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

// DefaultCostUSD is charged for endpoints without an explicit entry.
const DefaultCostUSD = 0.01

// defaultCosts mirrors the upstream x402 price list, in USD per call.
var defaultCosts = map[string]float64{
	models.EndpointSearchToken:    0.01,
	models.EndpointTokenPrice:     0.01,
	models.EndpointBalances:       0.02,
	models.EndpointPortfolio:      0.05,
	models.EndpointAnalyzeWallet:  0.10,
	models.EndpointSwapQuote:      0.05,
	models.EndpointExecuteSwap:    0.10,
	models.EndpointPipelineStatus: 0.01,
	models.EndpointSubmitTxHash:   0.01,
}

// Table is an immutable endpoint -> estimated cost mapping.
type Table struct {
	costs       map[string]float64
	defaultCost float64
}

// NewTable builds a table from the compiled-in defaults overlaid with the
// given overrides. A zero defaultCost falls back to DefaultCostUSD.
func NewTable(overrides map[string]float64, defaultCost float64) *Table {
	if defaultCost <= 0 {
		defaultCost = DefaultCostUSD
	}
	costs := make(map[string]float64, len(defaultCosts)+len(overrides))
	for ep, c := range defaultCosts {
		costs[ep] = c
	}
	for ep, c := range overrides {
		costs[ep] = c
	}
	return &Table{costs: costs, defaultCost: defaultCost}
}

// Default returns a table with the compiled-in price list only.
func Default() *Table {
	return NewTable(nil, DefaultCostUSD)
}

// CostOf returns the estimated USD cost of one call to endpoint.
func (t *Table) CostOf(endpoint string) float64 {
	if c, ok := t.costs[endpoint]; ok {
		return c
	}
	return t.defaultCost
}

// Endpoints lists the known endpoints in stable order.
func (t *Table) Endpoints() []string {
	eps := make([]string, 0, len(t.costs))
	for ep := range t.costs {
		eps = append(eps, ep)
	}
	sort.Strings(eps)
	return eps
}
