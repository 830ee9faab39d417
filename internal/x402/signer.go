package x402

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// defaultValidity bounds an authorization when the challenge does not carry
// its own timeout.
const defaultValidity = 600 * time.Second

// clockSkew widens validAfter backwards so a slightly fast server clock does
// not reject a fresh authorization.
const clockSkew = 60 * time.Second

// Signer produces a signed payment authorization for a challenge.
type Signer interface {
	// Network returns the blockchain network this signer pays on (e.g. "base").
	Network() string

	// Scheme returns the payment scheme the signer implements.
	Scheme() string

	// Address returns the paying account address.
	Address() string

	// Sign answers one requirement set with a single-use authorization.
	Sign(req *PaymentRequirements) (*PaymentPayload, error)
}

// EVMSigner signs exact-transfer authorizations with a local secp256k1 key.
type EVMSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
	network string
	rpcURL  string
}

// NewEVMSigner derives the paying account from a hex private key. An invalid
// key is a fatal configuration error for the process.
func NewEVMSigner(privateKeyHex, network, rpcURL string) (*EVMSigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid payment private key: %w", err)
	}
	if network == "" {
		network = "base"
	}
	return &EVMSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		network: network,
		rpcURL:  rpcURL,
	}, nil
}

func (s *EVMSigner) Network() string { return s.network }
func (s *EVMSigner) Scheme() string  { return SchemeExact }
func (s *EVMSigner) Address() string { return s.address.Hex() }

// Sign builds an EIP-3009 style authorization for the full amount the
// challenge demands and signs its canonical JSON with an EIP-191 personal
// signature. The nonce is 32 random bytes, making the payload single-use.
func (s *EVMSigner) Sign(req *PaymentRequirements) (*PaymentPayload, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate authorization nonce: %w", err)
	}

	validity := defaultValidity
	if req.MaxTimeoutSeconds > 0 {
		validity = time.Duration(req.MaxTimeoutSeconds) * time.Second
	}
	now := time.Now()

	auth := Authorization{
		From:        s.address.Hex(),
		To:          req.PayTo,
		Value:       req.MaxAmountRequired,
		ValidAfter:  now.Add(-clockSkew).Unix(),
		ValidBefore: now.Add(validity).Unix(),
		Nonce:       hexutil.Encode(nonce),
	}

	digest, err := authDigest(&auth)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, fmt.Errorf("sign payment authorization: %w", err)
	}
	// Shift recovery id to the Ethereum convention.
	sig[64] += 27

	return &PaymentPayload{
		X402Version: Version,
		Scheme:      SchemeExact,
		Network:     req.Network,
		Payload: ExactPayload{
			Signature:     hexutil.Encode(sig),
			Authorization: auth,
		},
	}, nil
}

// authDigest hashes the canonical JSON form of an authorization with the
// EIP-191 personal-message prefix.
func authDigest(auth *Authorization) ([]byte, error) {
	msg, err := json.Marshal(auth)
	if err != nil {
		return nil, fmt.Errorf("encode authorization for signing: %w", err)
	}
	return accounts.TextHash(msg), nil
}

// RecoverSigner returns the address that signed an exact payload. Used by
// tests and by anything that wants to sanity-check an outgoing payment.
func RecoverSigner(p *ExactPayload) (string, error) {
	digest, err := authDigest(&p.Authorization)
	if err != nil {
		return "", err
	}
	sig, err := hexutil.Decode(p.Signature)
	if err != nil {
		return "", fmt.Errorf("decode payment signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("payment signature has %d bytes, want %d", len(sig), crypto.SignatureLength)
	}
	cpy := make([]byte, len(sig))
	copy(cpy, sig)
	if cpy[64] >= 27 {
		cpy[64] -= 27
	}
	pub, err := crypto.SigToPub(digest, cpy)
	if err != nil {
		return "", fmt.Errorf("recover payment signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}
