package findthatcharity

import (
	"context"
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
		assert.Equal(t, "/orgtype/registered-charity/reconcile", r.URL.Path)
		w.Write([]byte(`{"result":[
			{"id":"GB-CHC-263710","name":"SHELTER","score":95.0,"type":[{"id":"registered-charity"}]}
		]}`))
	}))
	defer server.Close()

	client := New(httpclient.New(logger.Nop()), server.URL, logger.Nop())

	matches, err := client.ReconcileByName(context.Background(), "Shelter", "registered-charity")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "SHELTER", matches[0].Name)
	assert.Equal(t, "GB-CHC-263710", matches[0].ID)
	assert.Equal(t, "registered-charity", matches[0].Type)
}

func TestClient_ReconcileByName_UnknownCategoryFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reconcile", r.URL.Path)
		w.Write([]byte(`{"result":[]}`))
	}))
	defer server.Close()

	client := New(httpclient.New(logger.Nop()), server.URL, logger.Nop())

	matches, err := client.ReconcileByName(context.Background(), "Shelter", "made-up-category")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
