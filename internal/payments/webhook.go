package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureTolerance bounds how old a webhook timestamp may be before the
// delivery is rejected as a possible replay.
const SignatureTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleSignature   = errors.New("webhook signature timestamp outside tolerance")
)

// Event is the subset of a payment_intent webhook this service acts on.
type Event struct {
	ID          string
	Type        string
	ProviderRef string
	AmountCents int64
	Currency    string
	OrderID     string
}

// VerifySignature checks the processor's signature header against the raw
// payload. The header carries a unix timestamp and one or more v1 HMACs of
// "timestamp.payload" keyed with the endpoint secret.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	var ts int64
	var macs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			ts = parsed
		case "v1":
			macs = append(macs, v)
		}
	}
	if ts == 0 || len(macs) == 0 {
		return ErrInvalidSignature
	}

	age := now.Sub(time.Unix(ts, 0))
	if age > SignatureTolerance || age < -SignatureTolerance {
		return ErrStaleSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, candidate := range macs {
		if hmac.Equal([]byte(candidate), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// Sign builds a signature header for payload at the given time. The
// webhook tests and local tooling use it; production events arrive signed
// by the processor.
func Sign(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

// ParseEvent decodes a verified webhook payload into an Event. The order id
// rides in the intent metadata set at intent creation.
func ParseEvent(payload []byte) (*Event, error) {
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID       string `json:"id"`
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
				Metadata struct {
					OrderID string `json:"orderId"`
				} `json:"metadata"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode webhook payload: %w", err)
	}
	if raw.Type == "" || raw.Data.Object.ID == "" {
		return nil, errors.New("webhook payload missing event type or object id")
	}
	return &Event{
		ID:          raw.ID,
		Type:        raw.Type,
		ProviderRef: raw.Data.Object.ID,
		AmountCents: raw.Data.Object.Amount,
		Currency:    raw.Data.Object.Currency,
		OrderID:     raw.Data.Object.Metadata.OrderID,
	}, nil
}
