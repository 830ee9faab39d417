// Package gateway orchestrates every metered call: estimate cost, admit
// against the budget, send through the payment transport, charge on success,
// and leave exactly one audit entry either way.
package gateway

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/HeyElsa/elsa-openclaw/internal/audit"
	"github.com/HeyElsa/elsa-openclaw/internal/budget"
	"github.com/HeyElsa/elsa-openclaw/internal/models"
	"github.com/HeyElsa/elsa-openclaw/internal/pricing"
	"github.com/HeyElsa/elsa-openclaw/internal/x402"
)

// Sender is the payment-capable transport. The process-wide instance is owned
// by the app; tests substitute a mock here instead of touching globals.
type Sender interface {
	Send(ctx context.Context, endpoint string, payload any) (*x402.Response, error)
}

// Client is the call gateway.
type Client struct {
	costs  *pricing.Table
	budget *budget.Governor
	sender Sender
	audit  audit.Logger
}

// New assembles a gateway. A nil audit logger is replaced with a no-op sink.
func New(costs *pricing.Table, governor *budget.Governor, sender Sender, auditLogger audit.Logger) *Client {
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &Client{
		costs:  costs,
		budget: governor,
		sender: sender,
		audit:  auditLogger,
	}
}

// Budget exposes the governor for status reporting.
func (c *Client) Budget() *budget.Governor { return c.budget }

// Costs exposes the price table.
func (c *Client) Costs() *pricing.Table { return c.costs }

// Auditor exposes the audit sink for out-of-band notes (fallback resolver).
func (c *Client) Auditor() audit.Logger { return c.audit }

// Call runs one metered invocation of endpoint with the given JSON payload.
// Budget rejection happens before any network attempt and is never charged;
// upstream failures are never charged either. Exactly one api_call audit
// entry is written per invocation.
func (c *Client) Call(ctx context.Context, endpoint string, payload any) (*models.CallResult, error) {
	start := time.Now()
	estimated := c.costs.CostOf(endpoint)

	if err := c.budget.Check(endpoint); err != nil {
		c.writeAudit(endpoint, estimated, 0, err)
		var capErr *models.BudgetExceededError
		if errors.As(err, &capErr) {
			log.Warnf("gateway: %s rejected by budget (%s)", endpoint, capErr.Kind)
		}
		return nil, err
	}

	log.Debugf("gateway: calling %s", endpoint)

	resp, err := c.sender.Send(ctx, endpoint, payload)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		c.writeAudit(endpoint, estimated, latency, err)
		log.Errorf("gateway: %s failed after %dms: %v", endpoint, latency, err)
		return nil, err
	}

	c.budget.Record(endpoint, estimated)
	c.writeAudit(endpoint, estimated, latency, nil)
	log.Infof("gateway: %s ok in %dms (est. $%.4f, paid=%v)", endpoint, latency, estimated, resp.Paid)

	var receipt *string
	if resp.Receipt != "" {
		receipt = &resp.Receipt
	}
	return &models.CallResult{
		Data: resp.Body,
		Billing: models.BillingInfo{
			EstimatedCostUSD: estimated,
			PaymentRequired:  resp.Paid,
			Receipt:          receipt,
			Protocol:         x402.Protocol,
		},
		Meta: models.MetaInfo{
			LatencyMs: latency,
			Endpoint:  endpoint,
			Timestamp: time.Now().UTC(),
		},
	}, nil
}

func (c *Client) writeAudit(endpoint string, estimated float64, latency int64, callErr error) {
	entry := audit.Entry{
		Type:             audit.TypeAPICall,
		Endpoint:         endpoint,
		EstimatedCostUSD: estimated,
		OK:               callErr == nil,
		LatencyMs:        latency,
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	c.audit.Write(entry)
}
