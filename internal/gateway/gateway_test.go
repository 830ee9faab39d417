package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeyElsa/elsa-openclaw/internal/audit"
	"github.com/HeyElsa/elsa-openclaw/internal/budget"
	"github.com/HeyElsa/elsa-openclaw/internal/models"
	"github.com/HeyElsa/elsa-openclaw/internal/pricing"
	"github.com/HeyElsa/elsa-openclaw/internal/x402"
)

// mockSender scripts transport outcomes and counts invocations.
type mockSender struct {
	calls     int
	responses []*x402.Response
	errs      []error
}

func (m *mockSender) Send(ctx context.Context, endpoint string, payload any) (*x402.Response, error) {
	i := m.calls
	m.calls++
	var resp *x402.Response
	var err error
	if i < len(m.responses) {
		resp = m.responses[i]
	}
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return resp, err
}

type captureAudit struct {
	entries []audit.Entry
}

func (c *captureAudit) Write(entry audit.Entry) { c.entries = append(c.entries, entry) }

func (c *captureAudit) apiCalls() []audit.Entry {
	var out []audit.Entry
	for _, e := range c.entries {
		if e.Type == audit.TypeAPICall {
			out = append(out, e)
		}
	}
	return out
}

func okResponse() *x402.Response {
	return &x402.Response{Body: []byte(`{"tokens":[]}`), Paid: true, Receipt: "0xdeadbeef"}
}

func newTestClient(dailyCap float64, rateCap int, sender Sender, sink audit.Logger) *Client {
	costs := pricing.Default()
	return New(costs, budget.NewGovernor(costs, dailyCap, rateCap), sender, sink)
}

func TestCall_Success(t *testing.T) {
	sender := &mockSender{responses: []*x402.Response{okResponse()}}
	sink := &captureAudit{}
	client := newTestClient(10.0, 10, sender, sink)

	res, err := client.Call(context.Background(), models.EndpointSearchToken, map[string]any{"symbol_or_address": "WETH"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"tokens":[]}`, string(res.Data))
	assert.Equal(t, 0.01, res.Billing.EstimatedCostUSD)
	assert.True(t, res.Billing.PaymentRequired)
	require.NotNil(t, res.Billing.Receipt)
	assert.Equal(t, "0xdeadbeef", *res.Billing.Receipt)
	assert.Equal(t, x402.Protocol, res.Billing.Protocol)
	assert.Equal(t, models.EndpointSearchToken, res.Meta.Endpoint)

	// Exactly one charge, exactly one audit entry.
	status := client.Budget().Status()
	assert.InDelta(t, 0.01, status.SpentTodayUSD, 1e-9)
	entries := sink.apiCalls()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].OK)
	assert.Equal(t, 0.01, entries[0].EstimatedCostUSD)
}

func TestCall_NoReceiptStaysNil(t *testing.T) {
	sender := &mockSender{responses: []*x402.Response{{Body: []byte(`{}`)}}}
	client := newTestClient(10.0, 10, sender, nil)

	res, err := client.Call(context.Background(), models.EndpointSearchToken, nil)
	require.NoError(t, err)
	assert.Nil(t, res.Billing.Receipt)
	assert.False(t, res.Billing.PaymentRequired)
}

func TestCall_UpstreamFailureIsNeverCharged(t *testing.T) {
	sender := &mockSender{errs: []error{&models.UpstreamError{Status: 500, StatusText: "Internal Server Error", URL: models.EndpointPortfolio}}}
	sink := &captureAudit{}
	client := newTestClient(10.0, 10, sender, sink)

	_, err := client.Call(context.Background(), models.EndpointPortfolio, nil)
	require.Error(t, err)

	var upErr *models.UpstreamError
	assert.True(t, errors.As(err, &upErr))

	status := client.Budget().Status()
	assert.Zero(t, status.SpentTodayUSD)
	assert.Empty(t, status.LastCalls)

	entries := sink.apiCalls()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].OK)
	assert.Contains(t, entries[0].Error, "elsa api error")
}

func TestCall_BudgetRejectionSkipsNetwork(t *testing.T) {
	sender := &mockSender{responses: []*x402.Response{okResponse()}}
	sink := &captureAudit{}
	// Daily cap below the cheapest call: everything is rejected up front.
	client := newTestClient(0.001, 10, sender, sink)

	_, err := client.Call(context.Background(), models.EndpointAnalyzeWallet, nil)
	require.Error(t, err)

	var capErr *models.BudgetExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, models.CapDaily, capErr.Kind)

	// The transport was never touched and nothing was charged.
	assert.Zero(t, sender.calls)
	assert.Zero(t, client.Budget().Status().SpentTodayUSD)

	entries := sink.apiCalls()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].OK)
	assert.Zero(t, entries[0].LatencyMs)
}

func TestCall_RateCapRejection(t *testing.T) {
	sender := &mockSender{responses: []*x402.Response{okResponse(), okResponse(), okResponse()}}
	client := newTestClient(10.0, 2, sender, nil)

	ctx := context.Background()
	_, err := client.Call(ctx, models.EndpointSearchToken, nil)
	require.NoError(t, err)
	_, err = client.Call(ctx, models.EndpointSearchToken, nil)
	require.NoError(t, err)

	_, err = client.Call(ctx, models.EndpointSearchToken, nil)
	require.Error(t, err)
	var capErr *models.BudgetExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, models.CapRate, capErr.Kind)
	assert.Equal(t, 2, sender.calls)
}

func TestCall_AuditCompleteness(t *testing.T) {
	sender := &mockSender{
		responses: []*x402.Response{okResponse(), nil, okResponse()},
		errs:      []error{nil, &models.UpstreamError{Status: 502, StatusText: "Bad Gateway", URL: models.EndpointBalances}, nil},
	}
	sink := &captureAudit{}
	client := newTestClient(10.0, 10, sender, sink)

	ctx := context.Background()
	client.Call(ctx, models.EndpointSearchToken, nil)
	client.Call(ctx, models.EndpointBalances, nil)
	client.Call(ctx, models.EndpointTokenPrice, nil)

	entries := sink.apiCalls()
	require.Len(t, entries, 3)
	assert.True(t, entries[0].OK)
	assert.False(t, entries[1].OK)
	assert.True(t, entries[2].OK)
}

func TestCall_ChargeMatchesCostTable(t *testing.T) {
	sender := &mockSender{responses: []*x402.Response{okResponse()}}
	client := newTestClient(10.0, 10, sender, nil)

	_, err := client.Call(context.Background(), models.EndpointAnalyzeWallet, nil)
	require.NoError(t, err)

	status := client.Budget().Status()
	require.Len(t, status.LastCalls, 1)
	assert.Equal(t, pricing.Default().CostOf(models.EndpointAnalyzeWallet), status.LastCalls[0].CostUSD)
}
