package academic

import (
	"context"
	"errors"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
	"github.com/DioGolang/GoUniversity/pkg/logger"
)

// Service runs every operation on its own unit of work.
type Service struct {
	uow    outbound.UnitOfWorkFactory
	logger logger.Logger
}

func NewService(uow outbound.UnitOfWorkFactory, log logger.Logger) *Service {
	return &Service{uow: uow, logger: log}
}

type picker[T any] func(outbound.RepositoryProvider) outbound.Repository[T]

var (
	pickCourses  picker[entity.Course]  = outbound.RepositoryProvider.Courses
	pickGroups   picker[entity.Group]   = outbound.RepositoryProvider.Groups
	pickStudents picker[entity.Student] = outbound.RepositoryProvider.Students
)

func create[T any](ctx context.Context, s *Service, kind string, pick picker[T], e *T, invalid error) WriteResult {
	if invalid != nil {
		return s.reject(ctx, kind, "create", 0, invalid)
	}
	uow := s.uow.New()
	if err := pick(uow).Insert(e); err != nil {
		return s.reject(ctx, kind, "create", 0, err)
	}
	return commit(ctx, s, uow, kind, "create", 0, nil)
}

func update[T any](ctx context.Context, s *Service, kind string, pick picker[T], e *T, id, version int64, invalid error) WriteResult {
	if invalid != nil {
		return s.reject(ctx, kind, "update", id, invalid)
	}
	if version < 1 {
		return s.reject(ctx, kind, "update", id,
			entity.NewRuleViolation("Version", entity.RuleRequired, "Version of the loaded record is required."))
	}
	uow := s.uow.New()
	if err := pick(uow).Update(e); err != nil {
		return WriteResult{State: NotFound, Err: err}
	}
	return commit(ctx, s, uow, kind, "update", id, func(ctx context.Context, conflict error) WriteResult {
		_, err := pick(s.uow.New()).GetByID(ctx, id)
		switch {
		case errors.Is(err, outbound.ErrNotFound):
			return s.conflict(ctx, kind, "update", id, NotFoundOnRecheck, conflict)
		case err != nil:
			return s.storageError(ctx, kind, "update", id, errors.Join(conflict, err))
		}
		return s.conflict(ctx, kind, "update", id, FatalConflict, conflict)
	})
}

// remove loads the target with its dependent relation, lets guard veto the deletion,
// then stages a delete that storage re-checks against the same relation. A vetoed
// deletion stages nothing.
func remove[T any](ctx context.Context, s *Service, kind string, pick picker[T], id int64, relation string, guard func(*T) error) WriteResult {
	uow := s.uow.New()
	var includes []string
	if relation != "" {
		includes = append(includes, relation)
	}

	e, err := pick(uow).GetByID(ctx, id, includes...)
	switch {
	case errors.Is(err, outbound.ErrNotFound):
		return WriteResult{State: NotFound, Err: err}
	case err != nil:
		return s.storageError(ctx, kind, "delete", id, err)
	}

	if guard != nil {
		if err := guard(e); err != nil {
			return s.reject(ctx, kind, "delete", id, err)
		}
	}
	if relation != "" {
		err = pick(uow).DeleteIfEmpty(id, relation)
	} else {
		err = pick(uow).Delete(e)
	}
	if err != nil {
		return WriteResult{State: NotFound, Err: err}
	}

	return commit(ctx, s, uow, kind, "delete", id, func(ctx context.Context, conflict error) WriteResult {
		current, err := pick(s.uow.New()).GetByID(ctx, id, includes...)
		switch {
		case errors.Is(err, outbound.ErrNotFound):
			return s.conflict(ctx, kind, "delete", id, NotFoundOnRecheck, conflict)
		case err != nil:
			return s.storageError(ctx, kind, "delete", id, errors.Join(conflict, err))
		}
		if guard != nil {
			if err := guard(current); err != nil {
				return s.reject(ctx, kind, "delete", id, errors.Join(err, conflict))
			}
		}
		return s.conflict(ctx, kind, "delete", id, FatalConflict, conflict)
	})
}

// commit flushes uow and classifies the failure. A conflict on an existing identity
// goes to recheck, which reads storage again and decides the outcome. Nothing is retried.
func commit(ctx context.Context, s *Service, uow outbound.UnitOfWork, kind, op string, id int64, recheck func(context.Context, error) WriteResult) WriteResult {
	err := uow.Commit(ctx)
	switch {
	case err == nil:
		return WriteResult{State: Committed}
	case errors.Is(err, outbound.ErrConstraintViolation):
		return s.reject(ctx, kind, op, id, err)
	case errors.Is(err, outbound.ErrConcurrencyConflict):
		if id == 0 || recheck == nil {
			return s.conflict(ctx, kind, op, id, FatalConflict, err)
		}
		return recheck(ctx, err)
	}
	return s.storageError(ctx, kind, op, id, err)
}

func (s *Service) reject(ctx context.Context, kind, op string, id int64, err error) WriteResult {
	s.logger.Warn(ctx, "write rejected",
		logger.String("entity", kind),
		logger.String("operation", op),
		logger.Int64("id", id),
		logger.WithError(err),
	)
	return WriteResult{State: Rejected, Err: err}
}

func (s *Service) conflict(ctx context.Context, kind, op string, id int64, state WriteState, err error) WriteResult {
	s.logger.Warn(ctx, "write conflicted",
		logger.String("entity", kind),
		logger.String("operation", op),
		logger.Int64("id", id),
		logger.String("outcome", state.String()),
		logger.WithError(err),
	)
	return WriteResult{State: state, Err: err}
}

func (s *Service) storageError(ctx context.Context, kind, op string, id int64, err error) WriteResult {
	s.logger.Error(ctx, "write failed",
		logger.String("entity", kind),
		logger.String("operation", op),
		logger.Int64("id", id),
		logger.WithError(err),
	)
	return WriteResult{State: StorageError, Err: err}
}
