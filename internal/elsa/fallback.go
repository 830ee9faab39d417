package elsa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/HeyElsa/elsa-openclaw/internal/audit"
	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

// requiredFields declares, per endpoint, which response fields must be
// present and non-empty for a successful result to count as usable. Endpoints
// not listed here never trigger fallback resolution.
var requiredFields = map[string][]string{
	models.EndpointTokenPrice: {"price_usd", "symbol"},
}

// hasRequiredFields checks a raw response body against a field list. Missing
// keys, nulls and blank strings all count as absent.
func hasRequiredFields(raw json.RawMessage, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return false
	}
	for _, field := range fields {
		v, ok := body[field]
		if !ok || v == nil {
			return false
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}

// resolvePriceFallback answers a structurally valid but empty price response
// by searching for the token and synthesizing a price from the matching
// entry. The two calls' estimated costs are merged into one billing line.
// No match is not an error: the caller gets the original empty result back.
func (s *Service) resolvePriceFallback(ctx context.Context, tokenAddress string, primary *models.CallResult) (*models.Result[models.TokenPriceResponse], error) {
	log.Debugf("elsa: empty price for %s, trying token search fallback", tokenAddress)

	secondary, err := s.gw.Call(ctx, models.EndpointSearchToken, map[string]any{
		"symbol_or_address": tokenAddress,
		"limit":             defaultSearchLimit,
	})
	if err != nil {
		// The primary call succeeded; a broken fallback must not turn it
		// into a failure.
		log.Warnf("elsa: price fallback search failed for %s: %v", tokenAddress, err)
		return decode[models.TokenPriceResponse](primary)
	}

	var search models.SearchTokenResponse
	if err := json.Unmarshal(secondary.Data, &search); err != nil {
		log.Warnf("elsa: unreadable fallback search response for %s: %v", tokenAddress, err)
		return decode[models.TokenPriceResponse](primary)
	}

	for _, tok := range search.Tokens {
		if !strings.EqualFold(tok.Address, tokenAddress) {
			continue
		}
		res := &models.Result[models.TokenPriceResponse]{
			Data: models.TokenPriceResponse{
				TokenAddress: tok.Address,
				Chain:        tok.Chain,
				Symbol:       tok.Symbol,
				PriceUSD:     tok.PriceUSD,
			},
			Billing: primary.Billing,
			Meta:    primary.Meta,
		}
		res.Billing.EstimatedCostUSD += secondary.Billing.EstimatedCostUSD
		res.Meta.LatencyMs += secondary.Meta.LatencyMs
		res.Meta.FallbackUsed = true
		log.Infof("elsa: resolved %s price via token search (%s)", tok.Symbol, tok.Address)
		return res, nil
	}

	// No data available upstream either way. Leave a trace and hand the
	// empty primary result back unchanged.
	s.gw.Auditor().Write(audit.Entry{
		Type:     audit.TypeFallbackMiss,
		Endpoint: models.EndpointTokenPrice,
		OK:       true,
		Note:     fmt.Sprintf("no search match for %s", tokenAddress),
	})
	log.Warnf("elsa: no fallback match for token %s", tokenAddress)
	return decode[models.TokenPriceResponse](primary)
}
