package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPrivateKey = errors.New("payment private key not configured")
	ErrMissingBaseURL    = errors.New("api base url not configured")
)

// BudgetCapKind identifies which budget limit an admission check tripped.
type BudgetCapKind string

const (
	CapDaily BudgetCapKind = "DAILY_CAP"
	CapRate  BudgetCapKind = "RATE_CAP"
)

// BudgetExceededError is returned by the budget governor before any network
// attempt is made. Callers may retry later; nothing was spent.
type BudgetExceededError struct {
	Kind     BudgetCapKind
	Endpoint string
	Detail   string
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget exceeded (%s) for %s: %s", e.Kind, e.Endpoint, e.Detail)
}

// UpstreamError is a terminal non-2xx response from the Elsa API.
type UpstreamError struct {
	Status     int
	StatusText string
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("elsa api error: %d %s (%s)", e.Status, e.StatusText, e.URL)
}

// PaymentProtocolError indicates an x402 protocol violation, such as a second
// 402 challenge after payment was already presented, or a malformed challenge.
type PaymentProtocolError struct {
	Reason string
}

func (e *PaymentProtocolError) Error() string {
	return "payment protocol violation: " + e.Reason
}
