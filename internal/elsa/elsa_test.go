package elsa

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
	"github.com/HeyElsa/elsa-openclaw/internal/x402"
)

// payloadSender records the JSON payloads the wrappers build.
type payloadSender struct {
	payloads map[string]json.RawMessage
	body     string
}

func (s *payloadSender) Send(ctx context.Context, endpoint string, payload any) (*x402.Response, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if s.payloads == nil {
		s.payloads = map[string]json.RawMessage{}
	}
	s.payloads[endpoint] = raw
	body := s.body
	if body == "" {
		body = "{}"
	}
	return &x402.Response{Body: []byte(body)}, nil
}

func TestSearchToken_DefaultLimit(t *testing.T) {
	sender := &payloadSender{body: `{"tokens":[]}`}
	svc := newTestService(sender, nil)

	_, err := svc.SearchToken(context.Background(), "WETH", 0)
	require.NoError(t, err)

	assert.JSONEq(t, `{"symbol_or_address":"WETH","limit":10}`, string(sender.payloads[models.EndpointSearchToken]))
}

func TestExecuteSwap_PayloadShape(t *testing.T) {
	sender := &payloadSender{body: `{"pipeline_id":"p-1","status":"running"}`}
	svc := newTestService(sender, nil)

	params := models.SwapParams{
		FromChain:     "base",
		FromToken:     "ETH",
		FromAmount:    "0.5",
		ToChain:       "base",
		ToToken:       "USDC",
		WalletAddress: "0xabc",
		Slippage:      1,
	}
	res, err := svc.ExecuteSwap(context.Background(), params, true)
	require.NoError(t, err)
	assert.Equal(t, "p-1", res.Data.PipelineID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(sender.payloads[models.EndpointExecuteSwap], &sent))
	assert.Equal(t, true, sent["dry_run"])
	assert.Equal(t, "0xabc", sent["wallet_address"])
}

func TestPipelineStatus_DecodesTasks(t *testing.T) {
	sender := &payloadSender{body: `{"pipeline_id":"p-2","status":[{"task_id":"t-1","action_type":"swap","status":"sign_pending"}]}`}
	svc := newTestService(sender, nil)

	res, err := svc.PipelineStatus(context.Background(), "p-2")
	require.NoError(t, err)
	require.Len(t, res.Data.Status, 1)
	assert.Equal(t, models.TaskSignPending, res.Data.Status[0].Status)
}

func TestBalances_DecodeError(t *testing.T) {
	sender := &payloadSender{body: `[]`} // wrong shape
	svc := newTestService(sender, nil)

	_, err := svc.Balances(context.Background(), "0xabc")
	assert.Error(t, err)
}
