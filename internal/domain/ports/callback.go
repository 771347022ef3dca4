package ports

import (
	"context"

	"github.com/ersonp/register-graph/internal/domain/entities"
)

// UnresolvedCallback is the resolver of last resort, invoked synchronously
// when every automatic path is exhausted. A CLI adapter prompts on stdin;
// a batch adapter returns nil to leave the record unresolved.
type UnresolvedCallback interface {
	// ResolveManually may supply an ad hoc entity for the record, or nil
	// to leave it unresolved.
	ResolveManually(ctx context.Context, rel *entities.Relationship) (*entities.Entity, error)
}
