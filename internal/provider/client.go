// Package provider is the HTTP client for the third-party wallet provider.
// The provider is the system of record for funds; every call here may be
// slow or fail independently of the local ledger.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a provider client. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// envelope covers providers that wrap payloads in {"status","message","data"}.
type envelope struct {
	Status  interface{}     `json:"status"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// failed reports whether the envelope carries an explicit failure marker.
func (e envelope) failed() bool {
	if e.Success != nil && !*e.Success {
		return true
	}
	switch s := e.Status.(type) {
	case bool:
		return !s
	case string:
		switch strings.ToLower(s) {
		case "failed", "error", "failure":
			return true
		}
	}
	return false
}

// transferBody sends the amount as a JSON number rather than decimal's
// default quoted string.
type transferBody struct {
	FromAccount          string      `json:"fromAccount"`
	ToAccount            string      `json:"toAccount"`
	Amount               json.Number `json:"amount"`
	TransactionReference string      `json:"transactionReference"`
	Remarks              string      `json:"remarks"`
}

// GetWallet fetches live wallet state.
func (c *Client) GetWallet(ctx context.Context, walletID string) (*Wallet, error) {
	if walletID == "" {
		return nil, ErrEmptyWalletID
	}

	endpoint := fmt.Sprintf("%s/wallets/%s", c.baseURL, url.PathEscape(walletID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode wallet response: %w", err)
	}
	if env.failed() {
		return nil, &Error{StatusCode: http.StatusOK, Message: env.Message}
	}

	payload := body
	if len(env.Data) > 0 && string(env.Data) != "null" {
		payload = env.Data
	}

	var wallet Wallet
	if err := json.Unmarshal(payload, &wallet); err != nil {
		return nil, fmt.Errorf("failed to decode wallet: %w", err)
	}
	if wallet.ID == "" {
		wallet.ID = walletID
	}
	return &wallet, nil
}

// Transfer moves funds between two virtual accounts. It is never retried
// here; a failed call leaves the decision to the caller.
func (c *Client) Transfer(ctx context.Context, transfer TransferRequest) error {
	payload, err := json.Marshal(transferBody{
		FromAccount:          transfer.FromAccount,
		ToAccount:            transfer.ToAccount,
		Amount:               json.Number(transfer.Amount.StringFixed(2)),
		TransactionReference: transfer.TransactionReference,
		Remarks:              transfer.Remarks,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal transfer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transfers/wallet-to-wallet", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode transfer response: %w", err)
	}
	if env.failed() {
		msg := env.Message
		if msg == "" {
			msg = "transfer rejected"
		}
		return &Error{StatusCode: http.StatusOK, Message: msg}
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	return body, nil
}
