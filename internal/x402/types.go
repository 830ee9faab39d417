// Package x402 implements the buyer side of the HTTP 402 payment protocol:
// a first request without payment proof, a challenge parsed from the 402
// response, a signed authorization attached to exactly one retry.
package x402

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Protocol identifiers.
const (
	Version  = 1
	Protocol = "x402-v1"

	// SchemeExact is the only scheme this client can satisfy: an exact
	// amount transfer authorized EIP-3009 style.
	SchemeExact = "exact"

	// PaymentHeader carries the base64-encoded PaymentPayload on the retry.
	PaymentHeader = "X-Payment"

	// PaymentResponseHeader carries the facilitator's settlement result on
	// the paid response.
	PaymentResponseHeader = "X-Payment-Response"
)

// PaymentRequired is the body of a 402 challenge.
type PaymentRequired struct {
	X402Version int                   `json:"x402Version"`
	Error       string                `json:"error,omitempty"`
	Accepts     []PaymentRequirements `json:"accepts"`
}

// PaymentRequirements is one way the server accepts payment.
type PaymentRequirements struct {
	Scheme            string `json:"scheme"`
	Network           string `json:"network"`
	MaxAmountRequired string `json:"maxAmountRequired"` // atomic token units
	Resource          string `json:"resource"`
	Description       string `json:"description,omitempty"`
	PayTo             string `json:"payTo"`
	Asset             string `json:"asset"`
	MaxTimeoutSeconds int    `json:"maxTimeoutSeconds,omitempty"`
}

// PaymentPayload is the signed answer to a challenge, single-use by nonce.
type PaymentPayload struct {
	X402Version int          `json:"x402Version"`
	Scheme      string       `json:"scheme"`
	Network     string       `json:"network"`
	Payload     ExactPayload `json:"payload"`
}

// ExactPayload is the scheme payload for "exact" transfers.
type ExactPayload struct {
	Signature     string        `json:"signature"`
	Authorization Authorization `json:"authorization"`
}

// Authorization mirrors the EIP-3009 transferWithAuthorization tuple.
type Authorization struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	ValidAfter  int64  `json:"validAfter"`
	ValidBefore int64  `json:"validBefore"`
	Nonce       string `json:"nonce"`
}

// SettlementResponse is the decoded X-Payment-Response header.
type SettlementResponse struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction"`
	Network     string `json:"network"`
	Payer       string `json:"payer,omitempty"`
}

// ParsePaymentRequired decodes a 402 body and checks it carries at least one
// requirement set.
func ParsePaymentRequired(body []byte) (*PaymentRequired, error) {
	var pr PaymentRequired
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("decode 402 challenge: %w", err)
	}
	if len(pr.Accepts) == 0 {
		return nil, fmt.Errorf("402 challenge lists no accepted payment methods")
	}
	return &pr, nil
}

// EncodePaymentHeader serializes a payload into the X-Payment header value.
func EncodePaymentHeader(p *PaymentPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode payment payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePaymentHeader is the inverse of EncodePaymentHeader. The client only
// needs it in tests; servers use it to read what we sent.
func DecodePaymentHeader(value string) (*PaymentPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode payment header: %w", err)
	}
	var p PaymentPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payment payload: %w", err)
	}
	return &p, nil
}

// DecodeSettlementHeader decodes the X-Payment-Response header value.
func DecodeSettlementHeader(value string) (*SettlementResponse, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode settlement header: %w", err)
	}
	var s SettlementResponse
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode settlement response: %w", err)
	}
	return &s, nil
}

// EncodeSettlementHeader serializes a settlement result, used by test servers.
func EncodeSettlementHeader(s *SettlementResponse) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode settlement response: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
