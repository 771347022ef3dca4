package openai

import (
	"testing"

	"github.com/ersonp/register-graph/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagger(t *testing.T) {
	tagger, err := NewTagger(config.NERConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", tagger.model)

	tagger, err = NewTagger(config.NERConfig{APIKey: "test-key", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", tagger.model)
}

func TestNewTagger_RequiresAPIKey(t *testing.T) {
	_, err := NewTagger(config.NERConfig{})
	assert.Error(t, err)
}

func TestCleanJSONResponse(t *testing.T) {
	plain := `[{"text":"£500","label":"MONEY"}]`

	assert.Equal(t, plain, cleanJSONResponse(plain))
	assert.Equal(t, plain, cleanJSONResponse("```json\n"+plain+"\n```"))
	assert.Equal(t, plain, cleanJSONResponse("```\n"+plain+"\n```"))
	assert.Equal(t, plain, cleanJSONResponse("  "+plain+"  "))
}
