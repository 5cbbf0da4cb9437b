package stellar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// Client is a minimal Horizon client used to look up native XLM balances.
// Requests are rate limited so a busy marketplace page cannot hammer Horizon.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://horizon-testnet.stellar.org"
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

type accountResponse struct {
	Balances []struct {
		AssetType string `json:"asset_type"`
		Balance   string `json:"balance"`
	} `json:"balances"`
}

// NativeBalance returns the account's native XLM balance as Horizon reports
// it. Accounts Horizon does not know (unfunded) report "0".
func (c *Client) NativeBalance(ctx context.Context, address string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := c.baseURL + "/accounts/" + url.PathEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("horizon request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "0", nil
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("horizon returned status %d", resp.StatusCode)
	}

	var account accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return "", fmt.Errorf("decode horizon response: %w", err)
	}

	for _, b := range account.Balances {
		if b.AssetType == "native" {
			return b.Balance, nil
		}
	}
	return "0", nil
}
