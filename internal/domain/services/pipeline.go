package services

import (
	"context"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/solvers"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

// RunResult is the outcome of one resolution pass.
type RunResult struct {
	Relationships  []*entities.Relationship
	Entities       []*entities.Entity
	CustomEntities []*entities.Entity
	Total          int
	Resolved       int
}

// PercentResolved is the primary operator signal of data quality.
func (r *RunResult) PercentResolved() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Resolved) / float64(r.Total) * 100
}

// PipelineService runs the resolution pass over disclosure records in
// file order. Resolution is deliberately single-threaded and
// order-dependent: record N's alias lookups must observe every entity
// merged by records 1..N-1, so records are never processed in parallel.
type PipelineService struct {
	store     *EntityStore
	custom    *EntityStore
	resolver  solvers.EntityResolver
	tagger    ports.EntityTagger
	addresses ports.AddressParser
	callback  ports.UnresolvedCallback
	persist   ports.CustomStore
	overrides *OverrideTable
	log       *logger.Logger
}

// NewPipelineService creates a new PipelineService. callback, persist and
// overrides may be nil for batch runs with no manual path.
func NewPipelineService(
	store *EntityStore,
	resolver solvers.EntityResolver,
	tagger ports.EntityTagger,
	addresses ports.AddressParser,
	callback ports.UnresolvedCallback,
	persist ports.CustomStore,
	overrides *OverrideTable,
	log *logger.Logger,
) *PipelineService {
	return &PipelineService{
		store:     store,
		custom:    NewEntityStore(log),
		resolver:  resolver,
		tagger:    tagger,
		addresses: addresses,
		callback:  callback,
		persist:   persist,
		overrides: overrides,
		log:       log,
	}
}

// siblingIndex reads resolved output relationships of the current run.
type siblingIndex struct {
	emitted *[]*entities.Relationship
}

// RecurringSiblingTarget returns the resolved target of an earlier
// relationship of the same source and type carrying the recurring
// sentinel, or "".
func (s *siblingIndex) RecurringSiblingTarget(source string, relType entities.RelationshipType) string {
	for _, rel := range *s.emitted {
		if rel.Source == source && rel.Type == relType && rel.Resolved && rel.Amount.IsRecurring() && rel.Target != entities.UnknownTarget {
			return rel.Target
		}
	}
	return ""
}

// Run resolves every record in order and returns the full output set.
// Every input record maps to at least one output record; unresolvable
// records are passed through with the unknown target, never dropped.
func (p *PipelineService) Run(ctx context.Context, runID string, records []*entities.Relationship) (*RunResult, error) {
	result := &RunResult{Total: len(records)}

	if err := p.loadPersistedCustom(ctx); err != nil {
		return nil, err
	}
	if p.persist != nil {
		if last, err := p.persist.LastCheckpoint(ctx, runID); err != nil {
			p.log.Warn("reading checkpoint", "run", runID, "error", err)
		} else if last >= 0 {
			p.log.Info("previous run progress found", "run", runID, "last_record", last)
		}
	}

	env := solvers.Env{
		Aliases:   p.store,
		Resolver:  p.resolver,
		Tagger:    p.tagger,
		Addresses: p.addresses,
		Siblings:  &siblingIndex{emitted: &result.Relationships},
		Log:       p.log,
	}

	for i, rel := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel.Source = p.swap(rel.Source)
		rel.Target = p.swap(rel.Target)

		resolved := p.resolveRecord(ctx, env, rel, result)
		if resolved {
			result.Resolved++
		}

		if p.persist != nil {
			if err := p.persist.SaveCheckpoint(ctx, runID, i); err != nil {
				p.log.Warn("saving checkpoint", "run", runID, "record", i, "error", err)
			}
		}
	}

	result.Entities = p.store.All()
	result.CustomEntities = p.custom.All()

	p.log.Info("resolution pass complete",
		"records", result.Total,
		"resolved", result.Resolved,
		"percent", result.PercentResolved(),
		"entities", p.store.Len(),
		"custom_entities", p.custom.Len(),
	)
	return result, nil
}

// resolveRecord emits at least one output relationship for the record and
// reports whether any of them is resolved.
func (p *PipelineService) resolveRecord(ctx context.Context, env solvers.Env, rel *entities.Relationship, result *RunResult) bool {
	// A record whose endpoints both name known entities needs no solving.
	if p.store.FindByName(rel.Source) != nil && rel.IsResolvedTo() && p.store.FindByName(rel.Target) != nil {
		result.Relationships = append(result.Relationships, p.outputRelationship(rel, rel.Target, rel.Date, rel.Amount, true))
		return true
	}

	if !rel.Type.Known() {
		p.log.Warn("unknown relationship type", "type", rel.Type, "source", rel.Source)
		result.Relationships = append(result.Relationships, p.outputRelationship(rel, entities.UnknownTarget, rel.Date, rel.Amount, false))
		return false
	}

	solver, err := solvers.New(rel.Type, env)
	if err != nil {
		p.log.Warn("no solver for relationship type", "type", rel.Type, "error", err)
		result.Relationships = append(result.Relationships, p.outputRelationship(rel, entities.UnknownTarget, rel.Date, rel.Amount, false))
		return false
	}

	solved, err := solver.Solve(ctx, rel)
	if err != nil {
		p.log.Error("solving record failed", "type", rel.Type, "source", rel.Source, "error", err)
		result.Relationships = append(result.Relationships, p.outputRelationship(rel, entities.UnknownTarget, rel.Date, rel.Amount, false))
		return false
	}

	if len(solved.Entities) == 0 {
		if custom := p.resolveManually(ctx, rel); custom != nil {
			solved.Entities = append(solved.Entities, custom)
		}
	}

	if len(solved.Entities) == 0 {
		result.Relationships = append(result.Relationships, p.outputRelationship(rel, entities.UnknownTarget, solved.Date, solved.Amount, false))
		return false
	}

	for _, entity := range solved.Entities {
		stored := p.store.Upsert(entity)
		result.Relationships = append(result.Relationships, p.outputRelationship(rel, stored.Name, solved.Date, solved.Amount, true))
	}
	return true
}

// resolveManually invokes the unresolved-entity callback and folds any
// supplied entity into the durable custom set.
func (p *PipelineService) resolveManually(ctx context.Context, rel *entities.Relationship) *entities.Entity {
	if p.callback == nil {
		return nil
	}
	entity, err := p.callback.ResolveManually(ctx, rel)
	if err != nil {
		p.log.Warn("manual resolution failed", "source", rel.Source, "error", err)
		return nil
	}
	if entity == nil {
		return nil
	}

	p.custom.Upsert(entity)
	if p.persist != nil {
		if err := p.persist.SaveCustomEntity(ctx, entity); err != nil {
			p.log.Warn("persisting custom entity", "name", entity.Name, "error", err)
		}
	}
	return entity
}

// loadPersistedCustom seeds the run with custom entities from earlier
// runs so the operator is never asked twice.
func (p *PipelineService) loadPersistedCustom(ctx context.Context) error {
	if p.persist == nil {
		return nil
	}
	persisted, err := p.persist.ListCustomEntities(ctx)
	if err != nil {
		return err
	}
	for _, entity := range persisted {
		p.custom.Upsert(entity)
		p.store.Upsert(entity)
	}
	if len(persisted) > 0 {
		p.log.Info("loaded persisted custom entities", "count", len(persisted))
	}
	return nil
}

func (p *PipelineService) outputRelationship(rel *entities.Relationship, target, date string, amount entities.Amount, resolved bool) *entities.Relationship {
	if target != entities.UnknownTarget {
		target = strings.ToUpper(target)
	}
	if date == "" {
		date = rel.Date
	}
	if amount.Kind == entities.AmountUnset {
		amount = rel.Amount
	}
	return &entities.Relationship{
		Source:   rel.Source,
		Type:     rel.Type,
		Target:   target,
		Date:     date,
		Amount:   amount,
		Text:     rel.Text,
		Link:     rel.Link,
		Resolved: resolved,
	}
}

func (p *PipelineService) swap(value string) string {
	if p.overrides == nil {
		return value
	}
	return p.overrides.Swap(value)
}
