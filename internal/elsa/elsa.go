// Package elsa exposes the Elsa API endpoints as typed methods over the
// payment gateway. Inputs are assumed to be shape-valid already; these
// wrappers only attach defaults and decode responses.
package elsa

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HeyElsa/elsa-openclaw/internal/gateway"
	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

// DefaultChain is assumed when a price lookup does not name one.
const DefaultChain = "base"

// defaultSearchLimit matches the upstream default result count.
const defaultSearchLimit = 10

// Service wraps the gateway with per-endpoint methods.
type Service struct {
	gw *gateway.Client
}

func NewService(gw *gateway.Client) *Service {
	return &Service{gw: gw}
}

// decode turns a raw gateway envelope into a typed one.
func decode[T any](res *models.CallResult) (*models.Result[T], error) {
	var data T
	if err := json.Unmarshal(res.Data, &data); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", res.Meta.Endpoint, err)
	}
	return &models.Result[T]{Data: data, Billing: res.Billing, Meta: res.Meta}, nil
}

// SearchToken looks tokens up by symbol or address.
func (s *Service) SearchToken(ctx context.Context, query string, limit int) (*models.Result[models.SearchTokenResponse], error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	res, err := s.gw.Call(ctx, models.EndpointSearchToken, map[string]any{
		"symbol_or_address": query,
		"limit":             limit,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.SearchTokenResponse](res)
}

// TokenPrice fetches the current price of a token. When the primary endpoint
// answers with an empty price the search fallback kicks in (fallback.go).
func (s *Service) TokenPrice(ctx context.Context, tokenAddress, chain string) (*models.Result[models.TokenPriceResponse], error) {
	if chain == "" {
		chain = DefaultChain
	}
	primary, err := s.gw.Call(ctx, models.EndpointTokenPrice, map[string]any{
		"token_address": tokenAddress,
		"chain":         chain,
	})
	if err != nil {
		return nil, err
	}
	if hasRequiredFields(primary.Data, requiredFields[models.EndpointTokenPrice]) {
		return decode[models.TokenPriceResponse](primary)
	}
	return s.resolvePriceFallback(ctx, tokenAddress, primary)
}

// Balances returns token balances for a wallet.
func (s *Service) Balances(ctx context.Context, walletAddress string) (*models.Result[models.BalancesResponse], error) {
	res, err := s.gw.Call(ctx, models.EndpointBalances, map[string]any{
		"wallet_address": walletAddress,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.BalancesResponse](res)
}

// Portfolio returns a cross-chain portfolio breakdown for a wallet.
func (s *Service) Portfolio(ctx context.Context, walletAddress string) (*models.Result[models.PortfolioResponse], error) {
	res, err := s.gw.Call(ctx, models.EndpointPortfolio, map[string]any{
		"wallet_address": walletAddress,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.PortfolioResponse](res)
}

// AnalyzeWallet returns risk and activity data for a wallet.
func (s *Service) AnalyzeWallet(ctx context.Context, walletAddress string) (*models.Result[models.AnalyzeWalletResponse], error) {
	res, err := s.gw.Call(ctx, models.EndpointAnalyzeWallet, map[string]any{
		"wallet_address": walletAddress,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.AnalyzeWalletResponse](res)
}

// SwapQuote prices a swap without executing it.
func (s *Service) SwapQuote(ctx context.Context, params models.SwapParams) (*models.Result[models.SwapQuoteResponse], error) {
	res, err := s.gw.Call(ctx, models.EndpointSwapQuote, params)
	if err != nil {
		return nil, err
	}
	return decode[models.SwapQuoteResponse](res)
}

// ExecuteSwap starts a swap pipeline. With dryRun set the upstream only
// simulates.
func (s *Service) ExecuteSwap(ctx context.Context, params models.SwapParams, dryRun bool) (*models.Result[models.ExecuteSwapResponse], error) {
	payload := map[string]any{
		"from_chain":     params.FromChain,
		"from_token":     params.FromToken,
		"from_amount":    params.FromAmount,
		"to_chain":       params.ToChain,
		"to_token":       params.ToToken,
		"wallet_address": params.WalletAddress,
		"slippage":       params.Slippage,
		"dry_run":        dryRun,
	}
	res, err := s.gw.Call(ctx, models.EndpointExecuteSwap, payload)
	if err != nil {
		return nil, err
	}
	return decode[models.ExecuteSwapResponse](res)
}

// PipelineStatus reports the task states of a swap pipeline.
func (s *Service) PipelineStatus(ctx context.Context, pipelineID string) (*models.Result[models.PipelineStatusResponse], error) {
	res, err := s.gw.Call(ctx, models.EndpointPipelineStatus, map[string]any{
		"pipeline_id": pipelineID,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.PipelineStatusResponse](res)
}

// SubmitTransactionHash reports an externally signed transaction back to a
// pipeline task.
func (s *Service) SubmitTransactionHash(ctx context.Context, taskID, txHash string) (*models.Result[models.SubmitTxHashResponse], error) {
	res, err := s.gw.Call(ctx, models.EndpointSubmitTxHash, map[string]any{
		"task_id": taskID,
		"tx_hash": txHash,
	})
	if err != nil {
		return nil, err
	}
	return decode[models.SubmitTxHashResponse](res)
}
