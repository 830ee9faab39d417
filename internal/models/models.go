package models

import (
	"encoding/json"
	"time"
)

// Logical endpoint identifiers for the Elsa x402 API. Every call through the
// gateway is keyed by one of these paths, for pricing and budget accounting.
const (
	EndpointSearchToken    = "/api/search_token"
	EndpointTokenPrice     = "/api/get_token_price"
	EndpointBalances       = "/api/get_balances"
	EndpointPortfolio      = "/api/get_portfolio"
	EndpointAnalyzeWallet  = "/api/analyze_wallet"
	EndpointSwapQuote      = "/api/get_swap_quote"
	EndpointExecuteSwap    = "/api/execute_swap"
	EndpointPipelineStatus = "/api/get_transaction_status"
	EndpointSubmitTxHash   = "/api/submit_transaction_hash"
)

// BillingInfo describes what a single upstream call cost us.
type BillingInfo struct {
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
	PaymentRequired  bool    `json:"payment_required"`
	// Receipt is the settlement reference returned by the payment layer,
	// nil when the upstream did not surface one.
	Receipt  *string `json:"receipt"`
	Protocol string  `json:"protocol"`
}

// MetaInfo carries per-call observability data.
type MetaInfo struct {
	LatencyMs    int64     `json:"latency_ms"`
	Endpoint     string    `json:"endpoint"`
	Timestamp    time.Time `json:"timestamp"`
	FallbackUsed bool      `json:"fallback_used,omitempty"`
}

// CallResult is the uniform envelope returned by the gateway. Data is left
// raw; typed endpoint wrappers decode it into a Result[T].
type CallResult struct {
	Data    json.RawMessage `json:"data"`
	Billing BillingInfo     `json:"billing"`
	Meta    MetaInfo        `json:"meta"`
}

// Result is the typed counterpart of CallResult.
type Result[T any] struct {
	Data    T           `json:"data"`
	Billing BillingInfo `json:"billing"`
	Meta    MetaInfo    `json:"meta"`
}

// CallRecord is one charged call in the budget history. Immutable once
// appended; owned by the budget governor.
type CallRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Endpoint  string    `json:"endpoint"`
	CostUSD   float64   `json:"cost_usd"`
}

// BudgetStatus is a point-in-time snapshot of the spend window.
type BudgetStatus struct {
	SpentTodayUSD     float64      `json:"spent_today_usd"`
	RemainingTodayUSD float64      `json:"remaining_today_usd"`
	CallsLastMinute   int          `json:"calls_last_minute"`
	LastCalls         []CallRecord `json:"last_calls"`
}

// SwapParams are the shared parameters for quote and execution requests.
type SwapParams struct {
	FromChain     string  `json:"from_chain"`
	FromToken     string  `json:"from_token"`
	FromAmount    string  `json:"from_amount"`
	ToChain       string  `json:"to_chain"`
	ToToken       string  `json:"to_token"`
	WalletAddress string  `json:"wallet_address"`
	Slippage      float64 `json:"slippage"`
}
