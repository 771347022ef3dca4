package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/register-graph/internal/domain/entities"
)

// GraphLoader is the sink for resolved files. The Neo4j adapter implements
// it; tests substitute a recorder.
type GraphLoader interface {
	Clean(ctx context.Context) error
	LoadEntities(ctx context.Context, list []*entities.Entity) error
	LoadRelationships(ctx context.Context, list []*entities.Relationship) error
}

// LoadHandler pushes resolved entity and relationship files into the
// graph database.
type LoadHandler struct {
	loader GraphLoader
}

// NewLoadHandler creates a new load handler.
func NewLoadHandler(loader GraphLoader) *LoadHandler {
	return &LoadHandler{loader: loader}
}

// LoadOptions controls graph loading.
type LoadOptions struct {
	EntitiesFile      string
	RelationshipsFile string
	Clean             bool
}

// LoadResult contains the result of a graph load.
type LoadResult struct {
	Entities      int
	Relationships int
}

// Handle reads the resolved files and loads them into the graph.
func (h *LoadHandler) Handle(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	entityList, err := readEntitiesFile(opts.EntitiesFile)
	if err != nil {
		return nil, err
	}
	relationshipList, err := readRelationshipsFile(opts.RelationshipsFile)
	if err != nil {
		return nil, err
	}

	if opts.Clean {
		if err := h.loader.Clean(ctx); err != nil {
			return nil, fmt.Errorf("cleaning graph: %w", err)
		}
	}

	if err := h.loader.LoadEntities(ctx, entityList); err != nil {
		return nil, fmt.Errorf("loading entities: %w", err)
	}
	if err := h.loader.LoadRelationships(ctx, relationshipList); err != nil {
		return nil, fmt.Errorf("loading relationships: %w", err)
	}

	return &LoadResult{
		Entities:      len(entityList),
		Relationships: len(relationshipList),
	}, nil
}
