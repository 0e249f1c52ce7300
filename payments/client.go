// Package payments talks to the hosted payment provider: checkout
// session creation and webhook event verification.
package payments

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// SessionLine is one hosted-payment-page line. UnitPrice is TTC: the
// provider displays tax-inclusive amounts.
type SessionLine struct {
	Name      string  `json:"name"`
	ImageUrl  string  `json:"imageUrl,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type SessionRequest struct {
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customerEmail"`
	Lines         []SessionLine     `json:"lines"`
	Metadata      map[string]string `json:"metadata"`
	SuccessURL    string            `json:"successUrl"`
	CancelURL     string            `json:"cancelUrl"`
}

type Session struct {
	ID  string
	URL string
}

type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

func NewClient() *Client {
	return &Client{
		http:    resty.New().SetTimeout(30 * time.Second),
		baseURL: os.Getenv("PAYMENT_API_URL"),
		apiKey:  os.Getenv("PAYMENT_API_KEY"),
	}
}

// NewClientWith overrides the environment configuration, used by tests.
func NewClientWith(baseURL, apiKey string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(30 * time.Second),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// CreateSession creates a hosted checkout session and returns its id and
// redirect URL. The metadata travels opaquely through the provider and
// comes back on the webhook, which is how the order is found again.
func (c *Client) CreateSession(req SessionRequest) (*Session, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, fmt.Errorf("payment provider credentials are not set")
	}

	resp, err := c.http.R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(req).
		Post(c.baseURL + "/v1/checkout/sessions")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("session creation failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}

	id, idOK := payload["id"].(string)
	url, urlOK := payload["url"].(string)
	if !idOK || !urlOK || id == "" || url == "" {
		return nil, fmt.Errorf("incomplete session response: %v", payload)
	}

	return &Session{ID: id, URL: url}, nil
}
