// Package opencorporates implements company-name reconciliation against
// the OpenCorporates reconciliation API.
package opencorporates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/infrastructure/httpclient"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

const defaultBaseURL = "https://opencorporates.com/reconcile"

// Client reconciles company names. Implements ports.CorporateRegistry.
type Client struct {
	httpClient *httpclient.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// New creates a new Client. baseURL may be empty for the public endpoint;
// apiKey may be empty for unauthenticated (heavily rate-limited) access.
func New(httpClient *httpclient.Client, baseURL, apiKey string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log,
	}
}

type reconcileQuery struct {
	Query string `json:"query"`
}

type reconcileResponse struct {
	Result []struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Score float64 `json:"score"`
		Type  []struct {
			ID string `json:"id"`
		} `json:"type"`
	} `json:"result"`
}

// ReconcileByName returns candidate companies for the name, best score
// first, per the registry's own ordering.
func (c *Client) ReconcileByName(ctx context.Context, name, jurisdiction string) ([]ports.RegistryMatch, error) {
	query, err := json.Marshal(reconcileQuery{Query: name})
	if err != nil {
		return nil, fmt.Errorf("encoding reconcile query: %w", err)
	}

	endpoint := c.baseURL
	if jurisdiction != "" {
		endpoint = fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(jurisdiction))
	}
	params := url.Values{"query": {string(query)}}
	if c.apiKey != "" {
		params.Set("api_token", c.apiKey)
	}

	var resp reconcileResponse
	if err := c.httpClient.GetJSON(ctx, endpoint+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("reconciling company name: %w", err)
	}

	matches := make([]ports.RegistryMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		match := ports.RegistryMatch{
			Name:  r.Name,
			ID:    r.ID,
			Score: r.Score,
		}
		if len(r.Type) > 0 {
			match.Type = r.Type[0].ID
		}
		matches = append(matches, match)
	}
	c.log.Debug("company reconciliation", "query", name, "candidates", len(matches))
	return matches, nil
}
