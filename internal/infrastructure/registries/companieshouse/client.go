// Package companieshouse implements the numeric company lookup against
// the Companies House API.
package companieshouse

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ersonp/register-graph/internal/infrastructure/httpclient"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

const defaultBaseURL = "https://api.company-information.service.gov.uk"

// Client looks companies up by registration number. Implements
// ports.CompanyNumberLookup.
type Client struct {
	httpClient *httpclient.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// New creates a new Client. The API key is mandatory for the live
// service; baseURL may be empty for the public endpoint.
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

type companyResponse struct {
	CompanyName   string `json:"company_name"`
	CompanyNumber string `json:"company_number"`
	CompanyStatus string `json:"company_status"`
}

// LookupByNumber returns the registered company name, or "" when the
// number is unknown.
func (c *Client) LookupByNumber(ctx context.Context, number string) (string, error) {
	headers := map[string]string{
		// Companies House uses basic auth with the key as username.
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(c.apiKey+":")),
	}

	var resp companyResponse
	err := c.httpClient.GetJSON(ctx, c.baseURL+"/company/"+url.PathEscape(number), headers, &resp)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("looking up company %s: %w", number, err)
	}

	c.log.Debug("company number lookup", "number", number, "name", resp.CompanyName)
	return resp.CompanyName, nil
}
