package models

// Response shapes for the Elsa API endpoints. Only the fields the CLI and the
// fallback resolver actually read are typed; unknown fields are dropped.

// TokenInfo is one entry of a token search result set.
type TokenInfo struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Chain    string `json:"chain"`
	Decimals int    `json:"decimals"`
	PriceUSD string `json:"price_usd,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
}

type SearchTokenResponse struct {
	Tokens []TokenInfo `json:"tokens"`
}

type TokenPriceResponse struct {
	TokenAddress   string  `json:"token_address"`
	Chain          string  `json:"chain"`
	Symbol         string  `json:"symbol,omitempty"`
	PriceUSD       string  `json:"price_usd"`
	PriceChange24h float64 `json:"price_change_24h,omitempty"`
	MarketCap      string  `json:"market_cap,omitempty"`
	Volume24h      string  `json:"volume_24h,omitempty"`
}

type TokenBalance struct {
	Chain        string `json:"chain"`
	TokenAddress string `json:"token_address"`
	Symbol       string `json:"symbol"`
	Balance      string `json:"balance"`
	BalanceUSD   string `json:"balance_usd"`
	Decimals     int    `json:"decimals"`
}

type BalancesResponse struct {
	Balances []TokenBalance `json:"balances"`
	TotalUSD string         `json:"total_usd"`
}

type PortfolioChain struct {
	Chain    string `json:"chain"`
	ValueUSD string `json:"value_usd"`
	Tokens   []struct {
		Symbol   string `json:"symbol"`
		Address  string `json:"address"`
		Balance  string `json:"balance"`
		ValueUSD string `json:"value_usd"`
	} `json:"tokens"`
}

type PortfolioResponse struct {
	WalletAddress string           `json:"wallet_address"`
	TotalValueUSD string           `json:"total_value_usd"`
	Chains        []PortfolioChain `json:"chains"`
}

type AnalyzeWalletResponse struct {
	WalletAddress   string  `json:"wallet_address"`
	RiskScore       float64 `json:"risk_score"`
	ActivitySummary struct {
		TotalTransactions int64  `json:"total_transactions"`
		FirstSeen         string `json:"first_seen"`
		LastActive        string `json:"last_active"`
	} `json:"activity_summary"`
	Labels []string `json:"labels"`
}

type SwapQuoteResponse struct {
	QuoteID        string   `json:"quote_id"`
	FromChain      string   `json:"from_chain"`
	FromToken      string   `json:"from_token"`
	FromAmount     string   `json:"from_amount"`
	FromAmountUSD  string   `json:"from_amount_usd"`
	ToChain        string   `json:"to_chain"`
	ToToken        string   `json:"to_token"`
	ToAmount       string   `json:"to_amount"`
	ToAmountUSD    string   `json:"to_amount_usd"`
	ToAmountMin    string   `json:"to_amount_min"`
	PriceImpact    string   `json:"price_impact"`
	GasEstimateUSD string   `json:"gas_estimate_usd"`
	Route          []string `json:"route"`
}

type ExecuteSwapResponse struct {
	PipelineID string         `json:"pipeline_id"`
	Status     string         `json:"status"`
	Tasks      []PipelineTask `json:"tasks,omitempty"`
	Message    string         `json:"message,omitempty"`
}

type PipelineStatusResponse struct {
	PipelineID string         `json:"pipeline_id"`
	Status     []PipelineTask `json:"status"` // the API returns the task list under "status"
	Timestamp  string         `json:"timestamp,omitempty"`
}

type SubmitTxHashResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
