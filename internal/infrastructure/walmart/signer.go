package walmart

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
)

// Request header names required by the affiliate API. Exact spelling matters.
const (
	headerConsumerID = "WM_CONSUMER.ID"
	headerTimestamp  = "WM_CONSUMER.INTIMESTAMP"
	headerKeyVersion = "WM_SEC.KEY_VERSION"
	headerSignature  = "WM_SEC.AUTH_SIGNATURE"
)

// Signer produces per-request authentication signatures for the affiliate
// API. The key is parsed once at construction and never mutated, so a single
// Signer is safe for concurrent use.
type Signer struct {
	consumerID string
	keyVersion string
	privateKey *rsa.PrivateKey
}

// NewSigner parses the PEM-encoded private key and returns a ready signer.
// Both PKCS#1 and PKCS#8 encodings are accepted.
func NewSigner(consumerID, keyVersion, privateKeyPEM string) (*Signer, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("private key is not valid PEM")
	}

	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		parsed, err8 := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err8 != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err8)
		}
		rsaKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not an RSA key")
		}
		key = rsaKey
	}

	return &Signer{
		consumerID: consumerID,
		keyVersion: keyVersion,
		privateKey: key,
	}, nil
}

// Sign signs the canonical message for the given millisecond timestamp and
// returns the base64-encoded signature. The message layout is fixed by the
// retailer: consumer id, timestamp, and key version, each newline-terminated.
func (s *Signer) Sign(timestampMS string) (string, error) {
	message := s.consumerID + "\n" + timestampMS + "\n" + s.keyVersion + "\n"

	digest := sha256.Sum256([]byte(message))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	return base64.StdEncoding.EncodeToString(signature), nil
}

// Headers returns the four authentication headers for one request using the
// given fresh timestamp.
func (s *Signer) Headers(timestampMS string) (map[string]string, error) {
	signature, err := s.Sign(timestampMS)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		headerConsumerID: s.consumerID,
		headerTimestamp:  timestampMS,
		headerKeyVersion: s.keyVersion,
		headerSignature:  signature,
	}, nil
}
