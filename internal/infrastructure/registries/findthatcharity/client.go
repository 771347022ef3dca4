// Package findthatcharity implements reconciliation against the
// Find that Charity service, which spans charities, universities, local
// authorities, schools, health bodies and government organisations.
package findthatcharity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/infrastructure/httpclient"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

const defaultBaseURL = "https://findthatcharity.uk"

// categoryEndpoints maps lookup categories onto the service's org-type
// scoped reconciliation endpoints. "all" queries the unscoped endpoint.
var categoryEndpoints = map[string]string{
	"all":                "/reconcile",
	"registered-charity": "/orgtype/registered-charity/reconcile",
	"university":         "/orgtype/university/reconcile",
	"education":          "/orgtype/education/reconcile",
	"local-authority":    "/orgtype/local-authority/reconcile",
	"health":             "/orgtype/health/reconcile",
	"government":         "/orgtype/government-organisation/reconcile",
}

// Client reconciles organisation names. Implements ports.CharityRegistry.
type Client struct {
	httpClient *httpclient.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a new Client. baseURL may be empty for the public service.
func New(httpClient *httpclient.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, log: log}
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

// ReconcileByName returns candidates for the name scoped by category.
// An unrecognized category falls back to the unscoped endpoint.
func (c *Client) ReconcileByName(ctx context.Context, name, category string) ([]ports.RegistryMatch, error) {
	query, err := json.Marshal(reconcileQuery{Query: name})
	if err != nil {
		return nil, fmt.Errorf("encoding reconcile query: %w", err)
	}

	path, ok := categoryEndpoints[category]
	if !ok {
		path = categoryEndpoints["all"]
	}
	params := url.Values{"query": {string(query)}}

	var resp reconcileResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+path+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("reconciling organisation name: %w", err)
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
	c.log.Debug("organisation reconciliation", "query", name, "category", category, "candidates", len(matches))
	return matches, nil
}
