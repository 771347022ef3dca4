package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/services"
	"github.com/ersonp/register-graph/internal/infrastructure/parsers"
)

// ResolveHandler runs the resolution pass over extracted disclosure files
// and writes the resolved entity and relationship files.
type ResolveHandler struct {
	pipeline *services.PipelineService
	store    *services.EntityStore
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(pipeline *services.PipelineService, store *services.EntityStore) *ResolveHandler {
	return &ResolveHandler{
		pipeline: pipeline,
		store:    store,
	}
}

// ResolveOptions controls the resolution run.
type ResolveOptions struct {
	EntitiesFile      string
	RelationshipsFile string
	OutputDir         string
	RunID             string
}

// ResolveResult contains the result of a resolution run.
type ResolveResult struct {
	EntitiesFile      string
	RelationshipsFile string
	Total             int
	Resolved          int
	PercentResolved   float64
	Entities          int
	CustomEntities    int
}

// Handle reads the input files, resolves every record in file order and
// writes the output files into OutputDir.
func (h *ResolveHandler) Handle(ctx context.Context, opts ResolveOptions) (*ResolveResult, error) {
	seed, err := readEntitiesFile(opts.EntitiesFile)
	if err != nil {
		return nil, err
	}
	for _, e := range seed {
		h.store.Upsert(e)
	}

	records, err := readRelationshipsFile(opts.RelationshipsFile)
	if err != nil {
		return nil, err
	}

	runID := opts.RunID
	if runID == "" {
		runID = filepath.Base(opts.RelationshipsFile)
	}

	result, err := h.pipeline.Run(ctx, runID, records)
	if err != nil {
		return nil, fmt.Errorf("running resolution pass: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	entitiesOut := filepath.Join(opts.OutputDir, "entities_resolved.csv")
	all := append(append([]*entities.Entity{}, result.Entities...), result.CustomEntities...)
	if err := writeEntitiesFile(entitiesOut, all); err != nil {
		return nil, err
	}

	relationshipsOut := filepath.Join(opts.OutputDir, "relationships_resolved.csv")
	if err := writeRelationshipsFile(relationshipsOut, result.Relationships); err != nil {
		return nil, err
	}

	return &ResolveResult{
		EntitiesFile:      entitiesOut,
		RelationshipsFile: relationshipsOut,
		Total:             result.Total,
		Resolved:          result.Resolved,
		PercentResolved:   result.PercentResolved(),
		Entities:          len(result.Entities),
		CustomEntities:    len(result.CustomEntities),
	}, nil
}

func readEntitiesFile(path string) ([]*entities.Entity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening entities file: %w", err)
	}
	defer file.Close()

	list, err := parsers.ReadEntities(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return list, nil
}

func readRelationshipsFile(path string) ([]*entities.Relationship, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening relationships file: %w", err)
	}
	defer file.Close()

	list, err := parsers.ReadRelationships(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return list, nil
}

func writeEntitiesFile(path string, list []*entities.Entity) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := parsers.WriteEntities(file, list); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeRelationshipsFile(path string, list []*entities.Relationship) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := parsers.WriteRelationships(file, list); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
