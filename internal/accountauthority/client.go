// Package accountauthority is the protocol adapter for the external account
// authority service that owns account status and balances. Every remote
// failure is absorbed here and collapsed to a boolean answer: validation
// lookups fail closed (an unreachable authority means "not approved") and
// balance mutations fail soft (an unreachable authority means the mutation
// did not apply). Outcomes are tracked internally as a tagged result so that
// policy stays explicit rather than a side effect of error handling.
package accountauthority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/corebank/payment-service/internal/config"
	"github.com/shopspring/decimal"
)

// Token literals the authority uses in its responses. Compared case-insensitively.
const (
	statusApproved = "APPROVED"
	statusClosed   = "CLOSED"
	tokenSuccess   = "SUCCESS"
)

// callResult tags the outcome of a single remote call
type callResult int

const (
	// callOK: HTTP success, body available
	callOK callResult = iota
	// callRejected: the authority answered with a non-success status code
	callRejected
	// callUnavailable: transport error or timeout, answer inconclusive
	callUnavailable
)

// Client issues status-lookup and balance-mutation requests against the
// account authority. Base URL and timeout are injected at construction.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an account authority client from injected configuration
func NewClient(logger *slog.Logger, cfg *config.AccountAuthorityConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

// QueryAccountStatus performs a status lookup for the account. A transport
// failure, timeout, or non-success response code returns an error: the
// lookup is inconclusive and the caller must not treat it as an answer.
func (c *Client) QueryAccountStatus(ctx context.Context, accountNo string) (string, error) {
	status, result := c.fetchStatus(ctx, accountNo)
	switch result {
	case callOK:
		return status, nil
	case callRejected:
		return "", fmt.Errorf("status lookup rejected for account %s", accountNo)
	default:
		return "", fmt.Errorf("account authority unavailable for account %s", accountNo)
	}
}

// IsApproved reports whether the account's status is APPROVED. Any
// inconclusive lookup yields false: an unreachable authority blocks new
// payments rather than letting them through.
func (c *Client) IsApproved(ctx context.Context, accountNo string) bool {
	status, result := c.fetchStatus(ctx, accountNo)
	return result == callOK && strings.EqualFold(status, statusApproved)
}

// IsClosed reports whether the account's status is CLOSED. An inconclusive
// lookup yields false ("not closed"), never an error.
func (c *Client) IsClosed(ctx context.Context, accountNo string) bool {
	status, result := c.fetchStatus(ctx, accountNo)
	return result == callOK && strings.EqualFold(status, statusClosed)
}

// balanceAdjustment is the request body for the balance mutation endpoint
type balanceAdjustment struct {
	AmountChange decimal.Decimal `json:"amountChange"`
}

// AdjustBalance issues a balance mutation carrying the signed delta. It
// returns true only when the authority answers with an HTTP success code and
// a SUCCESS body token; every other outcome, including transport failure,
// returns false.
func (c *Client) AdjustBalance(ctx context.Context, accountNo string, signedAmount decimal.Decimal) bool {
	endpoint := fmt.Sprintf("%s/api/accounts/%s/balance", c.baseURL, url.PathEscape(accountNo))

	payload, err := json.Marshal(balanceAdjustment{AmountChange: signedAmount})
	if err != nil {
		c.logger.Error("Failed to encode balance adjustment", "account_no", accountNo, "error", err)
		return false
	}

	body, result := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if result != callOK {
		c.logger.Warn("Balance adjustment did not apply",
			"account_no", accountNo,
			"amount_change", signedAmount.String(),
			"conclusive", result == callRejected,
		)
		return false
	}

	return strings.EqualFold(body, tokenSuccess)
}

// fetchStatus retrieves the raw status token for an account
func (c *Client) fetchStatus(ctx context.Context, accountNo string) (string, callResult) {
	endpoint := fmt.Sprintf("%s/api/accounts/accountNo/%s/status", c.baseURL, url.PathEscape(accountNo))
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// do executes one remote call and tags its outcome. The body is trimmed of
// whitespace and surrounding quotes so both plain-text and JSON-string
// token responses are handled.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (string, callResult) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		c.logger.Error("Failed to build account authority request", "endpoint", endpoint, "error", err)
		return "", callUnavailable
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Account authority call failed", "endpoint", endpoint, "error", err)
		return "", callUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read account authority response", "endpoint", endpoint, "error", err)
		return "", callUnavailable
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", callRejected
	}

	token := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	return token, callOK
}
