package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/teerhub/teer-core/internal/api/dto"
)

// TokenSource yields the current bearer token, or "" when the session is not
// authenticated. It is read per request so login/logout takes effect without
// rebuilding the client.
type TokenSource func() string

// Client talks to the betting backend's REST API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	token   TokenSource
}

func New(base string, timeout time.Duration, token TokenSource) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// Authenticated reports whether a bearer token is currently available.
func (c *Client) Authenticated() bool { return c.token() != "" }

// PlaceTicket submits a consolidated bet slip.
func (c *Client) PlaceTicket(ctx context.Context, t dto.TicketCreate) (*dto.TicketResponse, error) {
	var out dto.TicketResponse
	if err := c.do(ctx, http.MethodPost, "/bet/ticket", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HousesWithRounds fetches all active houses with their open rounds and
// game-type availability.
func (c *Client) HousesWithRounds(ctx context.Context) ([]dto.HouseWithRounds, error) {
	var out []dto.HouseWithRounds
	if err := c.do(ctx, http.MethodGet, "/bet/houses-with-rounds", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WalletInfo fetches balance plus recent transactions.
func (c *Client) WalletInfo(ctx context.Context) (*dto.WalletInfo, error) {
	var out dto.WalletInfo
	if err := c.do(ctx, http.MethodGet, "/wallet/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WalletBalance fetches the balance only.
func (c *Client) WalletBalance(ctx context.Context) (float64, error) {
	var out dto.BalanceInfo
	if err := c.do(ctx, http.MethodGet, "/wallet/balance", nil, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// Transactions fetches the transaction history, optionally filtered by type.
func (c *Client) Transactions(ctx context.Context, txType string, limit int) ([]dto.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{"limit": []string{strconv.Itoa(limit)}}
	if txType != "" {
		q.Set("transaction_type", txType)
	}
	var out []dto.Transaction
	if err := c.do(ctx, http.MethodGet, "/wallet/transactions?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestDeposit submits a deposit request; the returned transaction stays
// pending until an admin approves it.
func (c *Client) RequestDeposit(ctx context.Context, req dto.DepositRequest) (*dto.Transaction, error) {
	var out dto.Transaction
	if err := c.do(ctx, http.MethodPost, "/wallet/deposit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestWithdrawal submits a withdrawal request.
func (c *Client) RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*dto.Transaction, error) {
	var out dto.Transaction
	if err := c.do(ctx, http.MethodPost, "/wallet/withdraw", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	token := c.token()
	if token == "" {
		requestsTotal.WithLabelValues(endpoint, "unauthenticated").Inc()
		return fmt.Errorf("%s %s: %w", method, endpoint, ErrUnauthenticated)
	}

	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	res, err := c.HTTP.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("%s %s: %v: %w", method, endpoint, err, ErrNetwork)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		requestsTotal.WithLabelValues(endpoint, "unauthenticated").Inc()
		return fmt.Errorf("%s %s: %w", method, endpoint, ErrUnauthenticated)
	}
	if res.StatusCode >= 300 {
		requestsTotal.WithLabelValues(endpoint, "rejected").Inc()
		var er dto.ErrorResponse
		_ = json.NewDecoder(res.Body).Decode(&er)
		if er.Detail == "" {
			er.Detail = res.Status
		}
		return &ServerError{Status: res.StatusCode, Detail: er.Detail}
	}

	requestsTotal.WithLabelValues(endpoint, "ok").Inc()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
