package x402

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known throwaway development key, never funded.
const testPrivateKey = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

func testRequirements() *PaymentRequirements {
	return &PaymentRequirements{
		Scheme:            SchemeExact,
		Network:           "base",
		MaxAmountRequired: "10000",
		Resource:          "https://api.heyelsa.ai/api/get_token_price",
		PayTo:             "0x209693Bc6afc0C5328bA36FaF03C514EF312287C",
		Asset:             "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		MaxTimeoutSeconds: 300,
	}
}

func TestNewEVMSigner_RejectsBadKey(t *testing.T) {
	_, err := NewEVMSigner("not-a-key", "base", "")
	assert.Error(t, err)
}

func TestNewEVMSigner_DerivesStableAddress(t *testing.T) {
	a, err := NewEVMSigner(testPrivateKey, "base", "")
	require.NoError(t, err)
	b, err := NewEVMSigner(testPrivateKey, "base", "")
	require.NoError(t, err)

	assert.Equal(t, a.Address(), b.Address())
	assert.NotEmpty(t, a.Address())
	assert.Equal(t, "base", a.Network())
	assert.Equal(t, SchemeExact, a.Scheme())
}

func TestSign_ProducesRecoverablePayload(t *testing.T) {
	signer, err := NewEVMSigner(testPrivateKey, "base", "")
	require.NoError(t, err)

	req := testRequirements()
	payload, err := signer.Sign(req)
	require.NoError(t, err)

	assert.Equal(t, Version, payload.X402Version)
	assert.Equal(t, SchemeExact, payload.Scheme)
	assert.Equal(t, "base", payload.Network)

	auth := payload.Payload.Authorization
	assert.Equal(t, signer.Address(), auth.From)
	assert.Equal(t, req.PayTo, auth.To)
	assert.Equal(t, req.MaxAmountRequired, auth.Value)
	assert.Less(t, auth.ValidAfter, auth.ValidBefore)

	recovered, err := RecoverSigner(&payload.Payload)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), recovered)
}

func TestSign_NoncesAreSingleUse(t *testing.T) {
	signer, err := NewEVMSigner(testPrivateKey, "base", "")
	require.NoError(t, err)

	first, err := signer.Sign(testRequirements())
	require.NoError(t, err)
	second, err := signer.Sign(testRequirements())
	require.NoError(t, err)

	assert.NotEqual(t, first.Payload.Authorization.Nonce, second.Payload.Authorization.Nonce)
}

func TestPaymentHeader_RoundTrip(t *testing.T) {
	signer, err := NewEVMSigner(testPrivateKey, "base", "")
	require.NoError(t, err)

	payload, err := signer.Sign(testRequirements())
	require.NoError(t, err)

	header, err := EncodePaymentHeader(payload)
	require.NoError(t, err)

	decoded, err := DecodePaymentHeader(header)
	require.NoError(t, err)
	assert.Equal(t, payload.Payload.Authorization, decoded.Payload.Authorization)
	assert.Equal(t, payload.Payload.Signature, decoded.Payload.Signature)
}
