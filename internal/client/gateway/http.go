package gateway

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

	"github.com/plannly/guestsync/internal/auth"
	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
)

// HTTPClient implements Client over the store's JSON API. Every call gets
// its own deadline via context.WithTimeout and a freshly minted service
// token naming the calling account.
type HTTPClient struct {
	baseURL   string
	accountID string
	secret    []byte
	tokenTTL  time.Duration
	timeout   time.Duration
	hc        *http.Client
}

// NewHTTPClient constructs a gateway bound to baseURL, acting as accountID.
func NewHTTPClient(baseURL, accountID string, secret []byte, tokenTTL, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accountID: accountID,
		secret:    secret,
		tokenTTL:  tokenTTL,
		timeout:   timeout,
		hc:        &http.Client{},
	}
}

type guestsResponse struct {
	Success bool      `json:"success"`
	Guests  guestList `json:"guests"`
	Error   string    `json:"error"`
}

// guestList tolerates both fetch payload shapes: a flat array, or an
// object grouping the rows by side. Grouped responses are flattened in
// groom, bride, shared order.
type guestList []guest.Guest

func (l *guestList) UnmarshalJSON(data []byte) error {
	var flat []guest.Guest
	if err := json.Unmarshal(data, &flat); err == nil {
		*l = flat
		return nil
	}

	var grouped struct {
		Sides struct {
			Groom  []guest.Guest `json:"groom"`
			Bride  []guest.Guest `json:"bride"`
			Shared []guest.Guest `json:"shared"`
		} `json:"sides"`
	}
	if err := json.Unmarshal(data, &grouped); err != nil {
		return err
	}

	out := make(guestList, 0, len(grouped.Sides.Groom)+len(grouped.Sides.Bride)+len(grouped.Sides.Shared))
	out = append(out, grouped.Sides.Groom...)
	out = append(out, grouped.Sides.Bride...)
	out = append(out, grouped.Sides.Shared...)
	*l = out
	return nil
}

type guestResponse struct {
	Success bool         `json:"success"`
	Guest   *guest.Guest `json:"guest"`
	Error   string       `json:"error"`
}

type countResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	RemovedCount int    `json:"removedCount"`
	Error        string `json:"error"`
}

type accountResponse struct {
	Success bool           `json:"success"`
	Account *guest.Account `json:"account"`
	Error   string         `json:"error"`
}

func (c *HTTPClient) FetchGuests(ctx context.Context, owner string) ([]guest.Guest, error) {
	var out guestsResponse
	err := c.do(ctx, http.MethodGet, "/api/guests?owner="+url.QueryEscape(owner), nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Guests, nil
}

func (c *HTTPClient) CreateGuest(ctx context.Context, g guest.Guest) (*guest.Guest, error) {
	var out guestResponse
	if err := c.do(ctx, http.MethodPost, "/api/guests", g, &out); err != nil {
		return nil, err
	}
	return out.Guest, nil
}

func (c *HTTPClient) UpdateGuest(ctx context.Context, g guest.Guest) (*guest.Guest, error) {
	var out guestResponse
	if err := c.do(ctx, http.MethodPut, "/api/guests/"+url.PathEscape(g.ID), g, &out); err != nil {
		return nil, err
	}
	return out.Guest, nil
}

func (c *HTTPClient) DeleteGuest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/guests/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) DeleteAll(ctx context.Context, owner string) (int, error) {
	var out countResponse
	if err := c.do(ctx, http.MethodDelete, "/api/guests/delete-all?owner="+url.QueryEscape(owner), nil, &out); err != nil {
		return 0, err
	}
	return out.DeletedCount, nil
}

func (c *HTTPClient) CleanupDuplicates(ctx context.Context, owner string) (int, error) {
	var out countResponse
	if err := c.do(ctx, http.MethodPost, "/api/guests/cleanup-duplicates?owner="+url.QueryEscape(owner), nil, &out); err != nil {
		return 0, err
	}
	return out.RemovedCount, nil
}

func (c *HTTPClient) GetAccount(ctx context.Context, id string) (*guest.Account, error) {
	var out accountResponse
	if err := c.do(ctx, http.MethodGet, "/api/accounts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Account, nil
}

func (c *HTTPClient) UpdateAccount(ctx context.Context, a guest.Account) (*guest.Account, error) {
	var out accountResponse
	if err := c.do(ctx, http.MethodPut, "/api/accounts/"+url.PathEscape(a.ID), a, &out); err != nil {
		return nil, err
	}
	return out.Account, nil
}

// do performs one request against the store. A nil out means the caller
// only cares about the status code.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := auth.GenerateToken(c.accountID, c.secret, c.tokenTTL)
	if err != nil {
		return fmt.Errorf("minting token: %w", err)
	}
	req.Header.Set(common.AccessTokenHeaderName, token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("store request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &Error{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
