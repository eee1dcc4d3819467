package payments

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

// DefaultTolerance bounds how old a signed webhook timestamp may be.
const DefaultTolerance = 5 * time.Minute

var (
	ErrMissingSignature = errors.New("payments: missing signature header")
	ErrInvalidSignature = errors.New("payments: invalid signature")
	ErrExpiredSignature = errors.New("payments: signature timestamp outside tolerance")
)

// Sign produces a webhook signature header for payload at the given
// time, in the processor's "t=<unix>,v1=<hmac>" format. Used by tests
// and by local processor fakes.
func Sign(payload []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	return "t=" + ts + ",v1=" + computeSignature(payload, secret, ts)
}

// VerifySignature checks an inbound webhook header against the shared
// secret. The raw request body must be passed unmodified.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	if header == "" {
		return ErrMissingSignature
	}
	var ts string
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			ts = value
		case "v1":
			sigs = append(sigs, value)
		}
	}
	if ts == "" || len(sigs) == 0 {
		return ErrInvalidSignature
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}
	if age := time.Since(time.Unix(unix, 0)); age > tolerance || age < -tolerance {
		return ErrExpiredSignature
	}

	expected := computeSignature(payload, secret, ts)
	for _, sig := range sigs {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

func computeSignature(payload []byte, secret, ts string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.%s", ts, payload)
	return hex.EncodeToString(mac.Sum(nil))
}
