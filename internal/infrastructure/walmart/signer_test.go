package walmart

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPrivateKeyPEM generates a fresh RSA key and returns it PEM-encoded
// along with the parsed key for verification
func testPrivateKeyPEM(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return string(pem.EncodeToMemory(block)), key
}

func TestNewSigner(t *testing.T) {
	pemKey, _ := testPrivateKeyPEM(t)

	signer, err := NewSigner("consumer-1", "1", pemKey)
	require.NoError(t, err)
	assert.NotNil(t, signer)
}

func TestNewSigner_PKCS8(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	signer, err := NewSigner("consumer-1", "1", pemKey)
	require.NoError(t, err)
	assert.NotNil(t, signer)
}

func TestNewSigner_InvalidPEM(t *testing.T) {
	_, err := NewSigner("consumer-1", "1", "not a pem key")
	assert.Error(t, err)
}

func TestSign_VerifiesAgainstPublicKey(t *testing.T) {
	pemKey, key := testPrivateKeyPEM(t)

	signer, err := NewSigner("e8ac3f2d-ffff-4f4c-b8e0-1d4f9fd02000", "2", pemKey)
	require.NoError(t, err)

	signature, err := signer.Sign("1700000000000")
	require.NoError(t, err)

	rawSignature, err := base64.StdEncoding.DecodeString(signature)
	require.NoError(t, err, "signature must be valid base64")

	// The signed message is consumer id, timestamp, key version, each
	// newline-terminated
	message := "e8ac3f2d-ffff-4f4c-b8e0-1d4f9fd02000\n1700000000000\n2\n"
	digest := sha256.Sum256([]byte(message))

	err = rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest[:], rawSignature)
	assert.NoError(t, err, "signature must verify as PKCS#1 v1.5 over SHA-256")
}

func TestHeaders(t *testing.T) {
	pemKey, _ := testPrivateKeyPEM(t)

	signer, err := NewSigner("consumer-1", "3", pemKey)
	require.NoError(t, err)

	headers, err := signer.Headers("1700000000000")
	require.NoError(t, err)

	assert.Equal(t, "consumer-1", headers["WM_CONSUMER.ID"])
	assert.Equal(t, "1700000000000", headers["WM_CONSUMER.INTIMESTAMP"])
	assert.Equal(t, "3", headers["WM_SEC.KEY_VERSION"])
	assert.NotEmpty(t, headers["WM_SEC.AUTH_SIGNATURE"])
}

func TestSign_FreshSignaturePerTimestamp(t *testing.T) {
	pemKey, _ := testPrivateKeyPEM(t)

	signer, err := NewSigner("consumer-1", "1", pemKey)
	require.NoError(t, err)

	first, err := signer.Sign("1700000000000")
	require.NoError(t, err)
	second, err := signer.Sign("1700000000001")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
