package elsa

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeyElsa/elsa-openclaw/internal/audit"
	"github.com/HeyElsa/elsa-openclaw/internal/budget"
	"github.com/HeyElsa/elsa-openclaw/internal/gateway"
	"github.com/HeyElsa/elsa-openclaw/internal/models"
	"github.com/HeyElsa/elsa-openclaw/internal/pricing"
	"github.com/HeyElsa/elsa-openclaw/internal/x402"
)

// scriptedSender answers per endpoint and records what was called.
type scriptedSender struct {
	bodies map[string]string
	errs   map[string]error
	called []string
}

func (s *scriptedSender) Send(ctx context.Context, endpoint string, payload any) (*x402.Response, error) {
	s.called = append(s.called, endpoint)
	if err, ok := s.errs[endpoint]; ok {
		return nil, err
	}
	return &x402.Response{Body: []byte(s.bodies[endpoint]), Paid: true}, nil
}

type captureAudit struct {
	entries []audit.Entry
}

func (c *captureAudit) Write(entry audit.Entry) { c.entries = append(c.entries, entry) }

func newTestService(sender gateway.Sender, sink audit.Logger) *Service {
	costs := pricing.Default()
	gw := gateway.New(costs, budget.NewGovernor(costs, 100.0, 1000), sender, sink)
	return NewService(gw)
}

const tokenAddr = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"

func TestTokenPrice_PrimaryHasData(t *testing.T) {
	sender := &scriptedSender{bodies: map[string]string{
		models.EndpointTokenPrice: `{"token_address":"` + tokenAddr + `","chain":"base","symbol":"USDC","price_usd":"1.00"}`,
	}}
	svc := newTestService(sender, nil)

	res, err := svc.TokenPrice(context.Background(), tokenAddr, "base")
	require.NoError(t, err)

	assert.Equal(t, "1.00", res.Data.PriceUSD)
	assert.False(t, res.Meta.FallbackUsed)
	// No secondary call was made.
	assert.Equal(t, []string{models.EndpointTokenPrice}, sender.called)
	assert.Equal(t, 0.01, res.Billing.EstimatedCostUSD)
}

func TestTokenPrice_FallbackMerges(t *testing.T) {
	// Primary succeeds but is semantically empty; the search result carries a
	// case-variant spelling of the same address.
	sender := &scriptedSender{bodies: map[string]string{
		models.EndpointTokenPrice: `{"token_address":"` + tokenAddr + `","chain":"base","price_usd":""}`,
		models.EndpointSearchToken: `{"tokens":[
			{"name":"Other","symbol":"OTH","address":"0x1111","chain":"base","price_usd":"9.99"},
			{"name":"USD Coin","symbol":"USDC","address":"` + tokenAddr + `","chain":"base","price_usd":"1.00"}
		]}`,
	}}
	svc := newTestService(sender, nil)

	res, err := svc.TokenPrice(context.Background(), "0X833589FCD6EDB6E08F4C7C32D4F71B54BDA02913", "base")
	require.NoError(t, err)

	assert.Equal(t, "1.00", res.Data.PriceUSD)
	assert.Equal(t, "USDC", res.Data.Symbol)
	assert.True(t, res.Meta.FallbackUsed)
	// Both calls' estimates merged into one billing line.
	expected := pricing.Default().CostOf(models.EndpointTokenPrice) + pricing.Default().CostOf(models.EndpointSearchToken)
	assert.InDelta(t, expected, res.Billing.EstimatedCostUSD, 1e-9)
	assert.Equal(t, []string{models.EndpointTokenPrice, models.EndpointSearchToken}, sender.called)
}

func TestTokenPrice_FallbackNoMatch(t *testing.T) {
	sender := &scriptedSender{bodies: map[string]string{
		models.EndpointTokenPrice:  `{"token_address":"` + tokenAddr + `","chain":"base","price_usd":""}`,
		models.EndpointSearchToken: `{"tokens":[{"name":"Other","symbol":"OTH","address":"0x1111","chain":"base","price_usd":"9.99"}]}`,
	}}
	sink := &captureAudit{}
	svc := newTestService(sender, sink)

	res, err := svc.TokenPrice(context.Background(), tokenAddr, "base")
	require.NoError(t, err)

	// The empty primary result comes back unchanged; this is "no data", not
	// an error.
	assert.Empty(t, res.Data.PriceUSD)
	assert.False(t, res.Meta.FallbackUsed)

	var misses int
	for _, e := range sink.entries {
		if e.Type == audit.TypeFallbackMiss {
			misses++
		}
	}
	assert.Equal(t, 1, misses)
}

func TestTokenPrice_FallbackSearchFailureKeepsPrimary(t *testing.T) {
	sender := &scriptedSender{
		bodies: map[string]string{
			models.EndpointTokenPrice: `{"token_address":"` + tokenAddr + `","chain":"base","price_usd":""}`,
		},
		errs: map[string]error{
			models.EndpointSearchToken: &models.UpstreamError{Status: 500, StatusText: "Internal Server Error", URL: models.EndpointSearchToken},
		},
	}
	svc := newTestService(sender, nil)

	res, err := svc.TokenPrice(context.Background(), tokenAddr, "base")
	require.NoError(t, err)
	assert.Empty(t, res.Data.PriceUSD)
	assert.False(t, res.Meta.FallbackUsed)
}

func TestHasRequiredFields(t *testing.T) {
	fields := []string{"price_usd", "symbol"}

	assert.True(t, hasRequiredFields(json.RawMessage(`{"price_usd":"1.0","symbol":"USDC"}`), fields))
	assert.False(t, hasRequiredFields(json.RawMessage(`{"price_usd":"","symbol":"USDC"}`), fields))
	assert.False(t, hasRequiredFields(json.RawMessage(`{"price_usd":"1.0"}`), fields))
	assert.False(t, hasRequiredFields(json.RawMessage(`{"price_usd":null,"symbol":"USDC"}`), fields))
	assert.False(t, hasRequiredFields(json.RawMessage(`not json`), fields))
	assert.True(t, hasRequiredFields(json.RawMessage(`{}`), nil))
}
