package outbound

import "context"

// Repository reads one entity type and stages writes into the owning UnitOfWork.
// Writes reach storage only when the unit of work commits.
type Repository[T any] interface {
	Get(ctx context.Context, q Query[T]) ([]T, error)
	// GetByID returns ErrNotFound when no row has the given identity.
	GetByID(ctx context.Context, id int64, include ...string) (*T, error)

	// Insert stages a new row. The identity is assigned on commit and written back into
	// entity once the transaction succeeds, so it is zero until then.
	Insert(entity *T) error
	// Update stages a full-row replace guarded by the entity's version.
	Update(entity *T) error
	Delete(entity *T) error
	DeleteByID(id int64) error
	// DeleteIfEmpty stages a delete that only removes the row while no row of the
	// named relation points at it. A blocked or missing row fails the commit with
	// ErrConcurrencyConflict.
	DeleteIfEmpty(id int64, relation string) error
}
