package outbound

import (
	"context"

	"github.com/DioGolang/GoUniversity/internal/domain/entity"
)

// RepositoryProvider exposes one repository per entity type.
type RepositoryProvider interface {
	Courses() Repository[entity.Course]
	Groups() Repository[entity.Group]
	Students() Repository[entity.Student]
}

// UnitOfWork collects the writes staged through its repositories and flushes them
// atomically on Commit. It is scoped to one operation and is not safe for concurrent use.
//
// Identities of inserted entities are written back only after a successful Commit.
// A row staged in the same unit of work cannot reference a parent inserted there:
// commit the parent first, then stage the child in a new unit of work.
type UnitOfWork interface {
	RepositoryProvider
	Commit(ctx context.Context) error
}

type UnitOfWorkFactory interface {
	New() UnitOfWork
	// Do runs fn against a fresh unit of work and commits it when fn returns nil.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
}
