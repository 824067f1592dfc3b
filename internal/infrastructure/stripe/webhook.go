package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTolerance bounds how old a webhook timestamp may be before the
// event is rejected as a replay.
const DefaultTolerance = 5 * time.Minute

var (
	ErrInvalidSignatureHeader = errors.New("invalid signature header")
	ErrSignatureMismatch      = errors.New("signature mismatch")
	ErrTimestampOutsideWindow = errors.New("timestamp outside tolerance window")
)

// WebhookVerifier checks Stripe-Signature headers before any event is
// processed
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

// NewWebhookVerifier creates a verifier for the endpoint's signing secret
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{
		secret:    secret,
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
}

// Verify validates the signature header against the raw request payload.
// The header carries a timestamp and one or more v1 signatures:
//
//	t=1695737700,v1=5257a869e7...,v1=...
//
// The signed message is "<timestamp>.<payload>" and any matching v1
// signature accepts the event.
func (v *WebhookVerifier) Verify(payload []byte, header string) error {
	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	age := v.now().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return ErrTimestampOutsideWindow
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return ErrSignatureMismatch
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, ErrInvalidSignatureHeader
	}

	var timestamp int64
	var signatures []string

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return 0, nil, ErrInvalidSignatureHeader
		}

		switch parts[0] {
		case "t":
			t, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignatureHeader
			}
			timestamp = t
		case "v1":
			signatures = append(signatures, parts[1])
		}
		// Other schemes (v0) are ignored
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignatureHeader
	}

	return timestamp, signatures, nil
}
