package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SecretPrefix marks plaintext endpoint secrets.
const SecretPrefix = "whsec_"

// DefaultSignatureTolerance is the accepted clock skew for Verify.
const DefaultSignatureTolerance = 300 * time.Second

var (
	ErrMalformedSignature = errors.New("malformed signature header")
	ErrTimestampExpired   = errors.New("signature timestamp outside tolerance")
	ErrSignatureMismatch  = errors.New("signature mismatch")
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256
// over "<unix>.<body>".
type HMACSignatureService struct {
	now func() time.Time
}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{now: time.Now}
}

// Sign returns the header value "t=<unix>,v1=<hex>".
func (s *HMACSignatureService) Sign(body []byte, key string, at time.Time) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(body, key, ts))
}

// Verify checks a header produced by Sign. A zero tolerance uses DefaultSignatureTolerance.
func (s *HMACSignatureService) Verify(body []byte, header string, key string, tolerance time.Duration) error {
	ts, sig, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}

	// Bounds are compared in whole seconds so extreme timestamps cannot
	// overflow the skew.
	now := s.now().Unix()
	limit := int64(tolerance / time.Second)
	if ts < now-limit || ts > now+limit {
		return ErrTimestampExpired
	}

	expected := computeSignature(body, key, ts)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return ErrSignatureMismatch
	}
	return nil
}

// VerifyPlaintext verifies a header using the plaintext secret a receiver was given
// at creation or rotation.
func (s *HMACSignatureService) VerifyPlaintext(body []byte, header string, plaintext string, tolerance time.Duration) error {
	return s.Verify(body, header, HashSecret(plaintext), tolerance)
}

func computeSignature(body []byte, key string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseSignatureHeader(header string) (int64, string, error) {
	var (
		ts    int64
		sig   string
		hasTS bool
	)
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return 0, "", ErrMalformedSignature
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, "", ErrMalformedSignature
			}
			ts, hasTS = n, true
		case "v1":
			sig = v
		}
	}
	if !hasTS || sig == "" {
		return 0, "", ErrMalformedSignature
	}
	return ts, sig, nil
}

// GenerateSecret returns "whsec_" followed by n random bytes in hex.
func GenerateSecret(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return SecretPrefix + hex.EncodeToString(buf), nil
}

// HashSecret derives the stored signing key from a plaintext secret.
func HashSecret(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
