package database

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
	"github.com/DioGolang/GoUniversity/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/DioGolang/GoUniversity/internal/infra/database")

// change is one staged write. apply runs inside the commit transaction and returns
// what must happen to the in-memory entity once the transaction is durable.
type change struct {
	entity string
	op     string
	id     int64
	apply  func(ctx context.Context, tx *sqlx.Tx) (func(), error)
}

type changeSet struct {
	pending []change
}

func (c *changeSet) stage(ch change) {
	c.pending = append(c.pending, ch)
}

func (c *changeSet) drain() []change {
	out := c.pending
	c.pending = nil
	return out
}

type UnitOfWorkImpl struct {
	db       *sqlx.DB
	logger   logger.Logger
	changes  *changeSet
	courses  *Repository[entity.Course]
	groups   *Repository[entity.Group]
	students *Repository[entity.Student]
}

func (u *UnitOfWorkImpl) Courses() outbound.Repository[entity.Course]   { return u.courses }
func (u *UnitOfWorkImpl) Groups() outbound.Repository[entity.Group]     { return u.groups }
func (u *UnitOfWorkImpl) Students() outbound.Repository[entity.Student] { return u.students }

// Commit flushes every staged change in staging order inside one transaction. The
// staged set is emptied whatever the outcome.
func (u *UnitOfWorkImpl) Commit(ctx context.Context) error {
	pending := u.changes.drain()
	if len(pending) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "UnitOfWork.Commit",
		trace.WithAttributes(attribute.Int("uow.changes", len(pending))))
	defer span.End()

	err := u.flush(ctx, pending)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		u.logger.Warn(ctx, "unit of work rolled back",
			logger.Int("changes", len(pending)),
			logger.WithError(err),
		)
		return err
	}

	u.logger.Debug(ctx, "unit of work committed", logger.Int("changes", len(pending)))
	return nil
}

func (u *UnitOfWorkImpl) flush(ctx context.Context, pending []change) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classify(err))
	}

	afters := make([]func(), 0, len(pending))
	for _, ch := range pending {
		after, err := ch.apply(ctx, tx)
		if err != nil {
			err = fmt.Errorf("%s %s: %w", ch.op, ch.entity, classify(err))
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
			}
			return err
		}
		if after != nil {
			afters = append(afters, after)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", classify(err))
	}
	for _, after := range afters {
		after()
	}
	return nil
}

// UnitOfWorkFactory hands out one unit of work per logical operation.
type UnitOfWorkFactory struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewUnitOfWorkFactory(db *sqlx.DB, log logger.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, logger: log}
}

// New builds the unit of work with all of its repositories up front.
func (f *UnitOfWorkFactory) New() outbound.UnitOfWork {
	changes := &changeSet{}
	return &UnitOfWorkImpl{
		db:       f.db,
		logger:   f.logger,
		changes:  changes,
		courses:  newRepository(f.db, courses, changes, f.logger),
		groups:   newRepository(f.db, groups, changes, f.logger),
		students: newRepository(f.db, students, changes, f.logger),
	}
}

func (f *UnitOfWorkFactory) Do(ctx context.Context, fn func(uow outbound.UnitOfWork) error) error {
	uow := f.New()
	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
