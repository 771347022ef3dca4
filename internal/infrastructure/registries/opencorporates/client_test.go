package opencorporates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ersonp/register-graph/internal/infrastructure/httpclient"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ReconcileByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gb", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_token"))

		var q struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("query")), &q))
		assert.Equal(t, "Acme Holdings Ltd", q.Query)

		w.Write([]byte(`{"result":[
			{"id":"/companies/gb/00640531","name":"ACME HOLDINGS LIMITED","score":72.5,"type":[{"id":"/organization/organization"}]},
			{"id":"/companies/gb/00999999","name":"ACME TRADING LIMITED","score":41.0}
		]}`))
	}))
	defer server.Close()

	client := New(httpclient.New(logger.Nop()), server.URL, "test-key", logger.Nop())

	matches, err := client.ReconcileByName(context.Background(), "Acme Holdings Ltd", "gb")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "ACME HOLDINGS LIMITED", matches[0].Name)
	assert.Equal(t, "/companies/gb/00640531", matches[0].ID)
	assert.InDelta(t, 72.5, matches[0].Score, 0.001)
	assert.Equal(t, "/organization/organization", matches[0].Type)
	assert.Empty(t, matches[1].Type)
}

func TestClient_ReconcileByName_NoJurisdiction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client := New(httpclient.New(logger.Nop()), server.URL, "", logger.Nop())

	matches, err := client.ReconcileByName(context.Background(), "Acme", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
