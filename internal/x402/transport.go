package x402

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

// DefaultTimeout is a high ceiling: one logical call may involve the initial
// request, the challenge round-trip and the paid retry.
const DefaultTimeout = 60 * time.Second

// callState tracks the payment state machine for one logical call.
type callState int

const (
	stateUnpaid callState = iota
	statePaying
	stateSettled
)

// Response is the terminal result of one logical call.
type Response struct {
	Body []byte
	// Paid reports whether a 402 challenge was answered for this call.
	Paid bool
	// Receipt is the settlement transaction reference from the
	// X-Payment-Response header, empty when the server sent none.
	Receipt string
}

// Transport posts JSON payloads to the Elsa API, transparently answering at
// most one 402 challenge per logical call. A second 402 after payment was
// presented is a protocol violation, not something to retry.
type Transport struct {
	baseURL string
	signer  Signer
	client  *http.Client
}

// NewTransport wraps an HTTP client with the payment protocol. A nil client
// gets the default 60-second ceiling.
func NewTransport(baseURL string, signer Signer, client *http.Client) *Transport {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
		client:  client,
	}
}

// Send runs the state machine: Unpaid -> (402) -> Paying -> Settled.
// Any non-2xx terminal response becomes a *models.UpstreamError; protocol
// violations become *models.PaymentProtocolError.
func (t *Transport) Send(ctx context.Context, endpoint string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request payload: %w", err)
	}

	state := stateUnpaid
	var paymentHeader string

	for {
		status, respBody, header, err := t.post(ctx, endpoint, body, paymentHeader)
		if err != nil {
			return nil, err
		}

		switch {
		case status == http.StatusPaymentRequired:
			if state != stateUnpaid {
				return nil, &models.PaymentProtocolError{
					Reason: fmt.Sprintf("upstream answered 402 again after payment was presented for %s", endpoint),
				}
			}
			paymentHeader, err = t.answerChallenge(endpoint, respBody)
			if err != nil {
				return nil, err
			}
			state = statePaying

		case status >= 200 && status < 300:
			paid := state == statePaying
			state = stateSettled
			return &Response{
				Body:    respBody,
				Paid:    paid,
				Receipt: settlementReceipt(header, endpoint),
			}, nil

		default:
			return nil, &models.UpstreamError{
				Status:     status,
				StatusText: http.StatusText(status),
				URL:        endpoint,
			}
		}
	}
}

// answerChallenge parses the 402 body, picks a requirement set the signer can
// satisfy and returns the encoded X-Payment header for the retry.
func (t *Transport) answerChallenge(endpoint string, body []byte) (string, error) {
	challenge, err := ParsePaymentRequired(body)
	if err != nil {
		return "", &models.PaymentProtocolError{Reason: err.Error()}
	}

	req := selectRequirements(challenge, t.signer)
	if req == nil {
		return "", &models.PaymentProtocolError{
			Reason: fmt.Sprintf("no accepted payment method matches scheme %q on network %q",
				t.signer.Scheme(), t.signer.Network()),
		}
	}

	log.Debugf("x402: answering challenge for %s (%s %s, amount %s)",
		endpoint, req.Scheme, req.Network, req.MaxAmountRequired)

	payload, err := t.signer.Sign(req)
	if err != nil {
		return "", fmt.Errorf("sign challenge for %s: %w", endpoint, err)
	}
	return EncodePaymentHeader(payload)
}

func (t *Transport) post(ctx context.Context, endpoint string, body []byte, paymentHeader string) (int, []byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if paymentHeader != "" {
		req.Header.Set(PaymentHeader, paymentHeader)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response from %s: %w", endpoint, err)
	}
	return resp.StatusCode, respBody, resp.Header, nil
}

// selectRequirements picks the first requirement set the signer can satisfy.
func selectRequirements(challenge *PaymentRequired, signer Signer) *PaymentRequirements {
	for i := range challenge.Accepts {
		req := &challenge.Accepts[i]
		if req.Scheme == signer.Scheme() && req.Network == signer.Network() {
			return req
		}
	}
	return nil
}

// settlementReceipt extracts the transaction reference from the settlement
// header, if the server sent one. A malformed header is tolerated: payment
// already settled, the receipt is just not surfaced.
func settlementReceipt(header http.Header, endpoint string) string {
	value := header.Get(PaymentResponseHeader)
	if value == "" {
		return ""
	}
	settlement, err := DecodeSettlementHeader(value)
	if err != nil {
		log.Warnf("x402: unreadable settlement header on %s: %v", endpoint, err)
		return ""
	}
	return settlement.Transaction
}
