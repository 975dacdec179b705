// Package lookup resolves barcodes to product names via the UPCitemdb
// public API.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the UPCitemdb trial lookup endpoint.
const DefaultEndpoint = "https://api.upcitemdb.com/prod/trial/lookup"

// requestTimeout bounds the external call; a slow lookup just delays
// the scan response, never fails it.
const requestTimeout = 5 * time.Second

// Client looks up product names by barcode.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a lookup client. An empty endpoint selects the
// default UPCitemdb endpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

type lookupResponse struct {
	Total int `json:"total"`
	Items []struct {
		Title string `json:"title"`
	} `json:"items"`
}

// Lookup returns the suggested product name for a barcode, or "" when
// the database has no match. A non-nil error means the service could
// not be consulted; callers treat that the same as no match.
func (c *Client) Lookup(ctx context.Context, barcode string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?upc="+url.QueryEscape(barcode), nil)
	if err != nil {
		return "", fmt.Errorf("building lookup request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("product lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("product lookup: unexpected status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding lookup response: %w", err)
	}

	if body.Total <= 0 || len(body.Items) == 0 {
		return "", nil
	}
	return body.Items[0].Title, nil
}
