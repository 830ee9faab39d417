package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

func TestCostOf_KnownEndpoint(t *testing.T) {
	table := Default()

	assert.Equal(t, 0.01, table.CostOf(models.EndpointSearchToken))
	assert.Equal(t, 0.10, table.CostOf(models.EndpointAnalyzeWallet))
}

func TestCostOf_UnknownEndpointUsesDefault(t *testing.T) {
	table := NewTable(nil, 0.03)

	assert.Equal(t, 0.03, table.CostOf("/api/does_not_exist"))
}

func TestCostOf_OverridesWin(t *testing.T) {
	table := NewTable(map[string]float64{models.EndpointSearchToken: 0.25}, 0)

	assert.Equal(t, 0.25, table.CostOf(models.EndpointSearchToken))
	// Non-overridden entries keep their compiled-in value.
	assert.Equal(t, 0.02, table.CostOf(models.EndpointBalances))
}

func TestCostOf_Idempotent(t *testing.T) {
	table := Default()

	first := table.CostOf(models.EndpointPortfolio)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, table.CostOf(models.EndpointPortfolio))
	}
}

func TestEndpoints_SortedAndComplete(t *testing.T) {
	table := Default()

	eps := table.Endpoints()
	assert.Len(t, eps, 9)
	assert.IsIncreasing(t, eps)
}
