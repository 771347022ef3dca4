// Package neo4j loads the resolved entity and relationship files into a
// Neo4j graph database.
package neo4j

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/infrastructure/config"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

// labelExclusions never receive the secondary organisation label.
var labelExclusions = map[entities.EntityType]bool{
	entities.TypePerson:     true,
	entities.TypeAdvisor:    true,
	entities.TypePolitician: true,
	entities.TypeProperty:   true,
}

// Loader writes nodes and edges. One node per unique (type, name), one
// edge per resolved relationship record.
type Loader struct {
	driver   neo4j.DriverWithContext
	database string
	log      *logger.Logger
}

// NewLoader connects to Neo4j and verifies connectivity.
func NewLoader(ctx context.Context, cfg config.Neo4jConfig, log *logger.Logger) (*Loader, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""), func(c *neo4j.Config) {
		c.SocketConnectTimeout = 10 * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("initializing neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verifying neo4j connectivity: %w", err)
	}

	return &Loader{
		driver:   driver,
		database: cfg.Database,
		log:      log.With("client", "neo4j"),
	}, nil
}

// Close closes the driver.
func (l *Loader) Close(ctx context.Context) error {
	return l.driver.Close(ctx)
}

// Clean removes every node and relationship.
func (l *Loader) Clean(ctx context.Context) error {
	session := l.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, "MATCH (a) DETACH DELETE a", nil)
	})
	if err != nil {
		return fmt.Errorf("cleaning graph: %w", err)
	}
	l.log.Info("graph cleaned")
	return nil
}

// LoadEntities merges one node per entity. Nodes carry the entity type as
// their primary label plus the hierarchy labels: politicians and advisors
// are also people, and every non-human non-property type is also an
// organisation.
func (l *Loader) LoadEntities(ctx context.Context, list []*entities.Entity) error {
	session := l.session(ctx)
	defer session.Close(ctx)

	for _, e := range list {
		if !e.Type.Valid() {
			l.log.Warn("skipping entity with unknown type", "name", e.Name, "type", e.Type)
			continue
		}

		query := fmt.Sprintf(`
			MERGE (n:%s {name: $name})
			SET n.company_registration = $company_registration,
			    n.findthatcharity_registration = $charity_registration,
			    n.address = $address,
			    n.aliases = $aliases`,
			nodeLabels(e.Type),
		)
		params := map[string]any{
			"name":                 e.Name,
			"company_registration": e.CompanyRegistration,
			"charity_registration": e.CharityRegistration,
			"address":              e.Address,
			"aliases":              strings.Join(e.SortedAliases(), ";"),
		}

		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, query, params)
		})
		if err != nil {
			return fmt.Errorf("merging node %s: %w", e.Name, err)
		}
	}

	l.log.Info("entities loaded", "count", len(list))
	return nil
}

// LoadRelationships creates one edge per resolved relationship whose
// endpoints both exist as nodes. Unresolved records are skipped.
func (l *Loader) LoadRelationships(ctx context.Context, list []*entities.Relationship) error {
	session := l.session(ctx)
	defer session.Close(ctx)

	loaded := 0
	for _, rel := range list {
		if !rel.Resolved || !rel.Type.Known() {
			continue
		}

		query := fmt.Sprintf(`
			MATCH (a {name: $source}), (b {name: $target})
			CREATE (a)-[r:%s {date: $date, amount: $amount, link: $link}]->(b)`,
			strings.ToUpper(string(rel.Type)),
		)
		params := map[string]any{
			"source": entities.CanonicalName(rel.Source),
			"target": rel.Target,
			"date":   rel.Date,
			"amount": rel.Amount.String(),
			"link":   rel.Link,
		}

		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, query, params)
		})
		if err != nil {
			return fmt.Errorf("creating edge %s -> %s: %w", rel.Source, rel.Target, err)
		}
		loaded++
	}

	l.log.Info("relationships loaded", "count", loaded, "skipped", len(list)-loaded)
	return nil
}

func (l *Loader) session(ctx context.Context) neo4j.SessionWithContext {
	return l.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: l.database,
	})
}

// nodeLabels builds the label set for an entity type. The type enum is
// closed and validated, so interpolation is safe.
func nodeLabels(t entities.EntityType) string {
	labels := []string{string(t)}
	if t.IsHuman() {
		if t != entities.TypePerson {
			labels = append(labels, string(entities.TypePerson))
		}
	} else if !labelExclusions[t] {
		labels = append(labels, "organisation")
	}
	return strings.Join(labels, ":")
}
