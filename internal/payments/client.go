// Package payments talks to the hosted payment processor: creating payment
// intents at checkout and verifying the webhook events it sends back.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const defaultBaseURL = "https://api.stripe.com"

// Intent is the processor-side payment intent. The client secret drives the
// browser's confirm step.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// IntentClient creates payment intents for an order total.
type IntentClient interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, orderID string) (*Intent, error)
}

// Client is the HTTP IntentClient. Calls go through a circuit breaker so a
// struggling processor fails checkout fast instead of piling up requests.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*Intent]
	logger     *log.Logger
}

func NewClient(secretKey string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[*Intent](gobreaker.Settings{
			Name:    "payment-intents",
			Timeout: 30 * time.Second,
		}),
		logger: logger,
	}
}

// WithBaseURL points the client at a different API host. Tests use it with
// an httptest server.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// CreateIntent creates a payment intent for the given amount. The order id
// travels in the intent metadata so the webhook can find its way back.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency, orderID string) (*Intent, error) {
	return c.breaker.Execute(func() (*Intent, error) {
		form := url.Values{}
		form.Set("amount", strconv.FormatInt(amountCents, 10))
		form.Set("currency", currency)
		form.Set("payment_method_types[]", "card")
		form.Set("metadata[orderId]", orderID)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Printf("payments: create intent order=%s error=%v", orderID, err)
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			c.logger.Printf("payments: create intent order=%s status=%d", orderID, resp.StatusCode)
			return nil, fmt.Errorf("payment processor returned %d: %s", resp.StatusCode, apiErrorMessage(body))
		}

		var intent Intent
		if err := json.Unmarshal(body, &intent); err != nil {
			return nil, err
		}
		return &intent, nil
	})
}

func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return "unknown error"
}
