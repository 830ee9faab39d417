package config

import (
	"errors"
	"fmt"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

// Validate checks the fields the gateway cannot run without. A bad payment
// key surfaces later from the signer; here we only catch what is knowably
// wrong before any component is built.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w (set ELSA_API_URL)", models.ErrMissingBaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("api.timeout_seconds must be positive")
	}

	if c.Payment.PrivateKey == "" {
		return fmt.Errorf("%w (set PAYMENT_PRIVATE_KEY)", models.ErrMissingPrivateKey)
	}

	if c.Budget.DailyCapUSD <= 0 {
		return errors.New("budget.daily_cap_usd must be positive")
	}
	if c.Budget.CallsPerMinute <= 0 {
		return errors.New("budget.calls_per_minute must be positive")
	}

	for endpoint, cost := range c.Pricing.Endpoints {
		if endpoint == "" {
			return errors.New("pricing.endpoints contains an empty endpoint name")
		}
		if cost < 0 {
			return fmt.Errorf("pricing.endpoints cost for '%s' must not be negative", endpoint)
		}
	}

	return nil
}
