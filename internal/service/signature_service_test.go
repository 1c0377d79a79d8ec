package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSignatureService(now time.Time) *HMACSignatureService {
	svc := NewHMACSignatureService()
	svc.now = func() time.Time { return now }
	return svc
}

func TestHMACSignatureService_SignFormat(t *testing.T) {
	at := time.Unix(1700000000, 0)
	svc := fixedSignatureService(at)
	body := []byte(`{"id":"1"}`)

	header := svc.Sign(body, "key", at)

	mac := hmac.New(sha256.New, []byte("key"))
	mac.Write([]byte(`1700000000.{"id":"1"}`))
	want := fmt.Sprintf("t=1700000000,v1=%s", hex.EncodeToString(mac.Sum(nil)))
	assert.Equal(t, want, header)
	assert.Regexp(t, `^t=\d+,v1=[0-9a-f]{64}$`, header)
}

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	at := time.Unix(1700000000, 0)
	svc := fixedSignatureService(at.Add(10 * time.Second))
	body := []byte(`{"amount":50000}`)

	header := svc.Sign(body, "my-key", at)
	assert.NoError(t, svc.Verify(body, header, "my-key", 0))
}

func TestHMACSignatureService_Verify_Errors(t *testing.T) {
	at := time.Unix(1700000000, 0)
	body := []byte("payload")
	header := NewHMACSignatureService().Sign(body, "key", at)

	tests := []struct {
		name    string
		now     time.Time
		body    []byte
		header  string
		key     string
		wantErr error
	}{
		{"wrong key", at, body, header, "other", ErrSignatureMismatch},
		{"tampered body", at, []byte("payload!"), header, "key", ErrSignatureMismatch},
		{"short signature", at, body, "t=1700000000,v1=abc", "key", ErrSignatureMismatch},
		{"too old", at.Add(301 * time.Second), body, header, "key", ErrTimestampExpired},
		{"future", at.Add(-301 * time.Second), body, header, "key", ErrTimestampExpired},
		{"empty header", at, body, "", "key", ErrMalformedSignature},
		{"missing v1", at, body, "t=1700000000", "key", ErrMalformedSignature},
		{"non numeric t", at, body, "t=abc,v1=00", "key", ErrMalformedSignature},
		{"no equals", at, body, "garbage", "key", ErrMalformedSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := fixedSignatureService(tt.now)
			err := svc.Verify(tt.body, tt.header, tt.key, 300*time.Second)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHMACSignatureService_Verify_AtToleranceBoundary(t *testing.T) {
	at := time.Unix(1700000000, 0)
	svc := fixedSignatureService(at.Add(300 * time.Second))
	header := svc.Sign([]byte("x"), "k", at)
	assert.NoError(t, svc.Verify([]byte("x"), header, "k", 300*time.Second))
}

func TestHMACSignatureService_Verify_ExtremeTimestamps(t *testing.T) {
	now := time.Unix(1700000000, 0)
	svc := fixedSignatureService(now)
	body := []byte("payload")

	// 18446744074s of skew wraps to under a second when scaled to nanoseconds.
	for _, ts := range []int64{
		now.Unix() - 18446744074,
		now.Unix() + 18446744074,
		math.MinInt64,
		math.MaxInt64,
	} {
		t.Run(fmt.Sprint(ts), func(t *testing.T) {
			header := fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(body, "key", ts))
			assert.ErrorIs(t, svc.Verify(body, header, "key", 300*time.Second), ErrTimestampExpired)
		})
	}
}

func TestHMACSignatureService_VerifyPlaintext(t *testing.T) {
	at := time.Now()
	svc := NewHMACSignatureService()
	secret, err := GenerateSecret(32)
	require.NoError(t, err)

	header := svc.Sign([]byte("body"), HashSecret(secret), at)
	assert.NoError(t, svc.VerifyPlaintext([]byte("body"), header, secret, 0))
	assert.ErrorIs(t, svc.VerifyPlaintext([]byte("body"), header, secret+"x", 0), ErrSignatureMismatch)
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret(32)
	require.NoError(t, err)
	b, err := GenerateSecret(32)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, SecretPrefix))
	assert.Len(t, a, len(SecretPrefix)+64)
	assert.NotEqual(t, a, b)

	short, err := GenerateSecret(0)
	require.NoError(t, err)
	assert.Len(t, short, len(SecretPrefix)+64)
}

func TestHashSecret(t *testing.T) {
	assert.Equal(t, HashSecret("whsec_abc"), HashSecret("whsec_abc"))
	assert.NotEqual(t, HashSecret("whsec_abc"), HashSecret("whsec_abd"))
	assert.Regexp(t, `^[0-9a-f]{64}$`, HashSecret("whsec_abc"))
}
