package companieshouse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ersonp/register-graph/internal/infrastructure/httpclient"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LookupByNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company/00640531", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Basic "))
		w.Write([]byte(`{"company_name":"ACME HOLDINGS LIMITED","company_number":"00640531","company_status":"active"}`))
	}))
	defer server.Close()

	client := New(httpclient.New(logger.Nop()), server.URL, "test-key", logger.Nop())

	name, err := client.LookupByNumber(context.Background(), "00640531")
	require.NoError(t, err)
	assert.Equal(t, "ACME HOLDINGS LIMITED", name)
}

func TestClient_LookupByNumber_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(httpclient.New(logger.Nop()), server.URL, "test-key", logger.Nop())

	// An unknown number is an empty result, not an error.
	name, err := client.LookupByNumber(context.Background(), "99999999")
	require.NoError(t, err)
	assert.Empty(t, name)
}
