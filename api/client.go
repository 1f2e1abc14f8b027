// Package api provides typed clients for the Voyago REST endpoints. All of
// them share one *http.Client, expected to carry the authenticated
// transport so every call gets the bearer header and refresh-then-retry
// behavior for free.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	clierrors "github.com/voyago-app/voyago-cli/internal/errors"
)

// Client bundles the per-area services.
type Client struct {
	baseURL    string
	httpClient *http.Client

	Flights      *FlightsService
	Hotels       *HotelsService
	Catalog      *CatalogService
	Reservations *ReservationsService
	Payments     *PaymentsService
	Users        *UsersService
	Admin        *AdminReservationsService
	Stats        *StatsService
}

// New creates a Client. httpClient must already wrap the authenticated
// transport.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[api.New] baseURL is required")
	}
	if httpClient == nil {
		return nil, errors.New("[api.New] httpClient is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
	c.Flights = &FlightsService{client: c}
	c.Hotels = &HotelsService{client: c}
	c.Catalog = &CatalogService{client: c}
	c.Reservations = &ReservationsService{client: c}
	c.Payments = &PaymentsService{client: c}
	c.Users = &UsersService{client: c}
	c.Admin = &AdminReservationsService{client: c}
	c.Stats = &StatsService{client: c}
	return c, nil
}

// do issues one JSON request. body and out may be nil. query may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "json.Marshal")
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrap(err, "http.NewRequestWithContext")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "httpClient.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &clierrors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
