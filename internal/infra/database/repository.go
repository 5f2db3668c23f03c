package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/pkg/logger"
	"github.com/jmoiron/sqlx"
)

// Repository is the sqlx implementation of outbound.Repository for one entity type.
// Reads hit the connection pool directly; writes are staged into the changeSet
// shared with the owning unit of work.
type Repository[T any] struct {
	db      *sqlx.DB
	m       *mapping[T]
	changes *changeSet
	logger  logger.Logger
}

func newRepository[T any](db *sqlx.DB, m *mapping[T], changes *changeSet, log logger.Logger) *Repository[T] {
	return &Repository[T]{db: db, m: m, changes: changes, logger: log}
}

func (r *Repository[T]) Get(ctx context.Context, q outbound.Query[T]) ([]T, error) {
	query, args := r.buildSelect(q)
	r.logger.Debug(ctx, "repository query",
		logger.String("entity", r.m.name),
		logger.String("sql", query),
	)

	rows := []T{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", r.m.table, classify(err))
	}
	if err := loadIncludes(ctx, r.db, r.m, rows, q.Include); err != nil {
		return nil, err
	}
	if q.Match == nil {
		return rows, nil
	}

	matched := rows[:0]
	for i := range rows {
		if q.Match(&rows[i]) {
			matched = append(matched, rows[i])
		}
	}
	return matched, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id int64, include ...string) (*T, error) {
	query := r.db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", r.m.selectList(), r.m.table, r.m.key))

	var row T
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("get %s %d: %w", r.m.name, id, classify(err))
	}

	rows := []T{row}
	if err := loadIncludes(ctx, r.db, r.m, rows, strings.Join(include, ",")); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *Repository[T]) Insert(e *T) error {
	if r.m.keyOf(e) != 0 {
		return fmt.Errorf("insert %s: %w", r.m.name, outbound.ErrIdentityAssigned)
	}

	cols := append(append([]string{}, r.m.columns...), versionColumn)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.m.table, strings.Join(cols, ", "), placeholders(len(cols)), r.m.key)

	r.changes.stage(change{entity: r.m.name, op: "insert", apply: func(ctx context.Context, tx *sqlx.Tx) (func(), error) {
		args := append(r.m.values(e), int64(1))
		var id int64
		if err := tx.QueryRowxContext(ctx, tx.Rebind(query), args...).Scan(&id); err != nil {
			return nil, err
		}
		return func() {
			r.m.setKey(e, id)
			*r.m.version(e) = 1
		}, nil
	}})
	return nil
}

func (r *Repository[T]) Update(e *T) error {
	id := r.m.keyOf(e)
	if id == 0 {
		return fmt.Errorf("update %s: %w", r.m.name, outbound.ErrIdentityMissing)
	}

	sets := make([]string, 0, len(r.m.columns)+1)
	for _, c := range r.m.columns {
		sets = append(sets, c+" = ?")
	}
	sets = append(sets, versionColumn+" = "+versionColumn+" + 1")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ? AND %s = ?",
		r.m.table, strings.Join(sets, ", "), r.m.key, versionColumn)

	r.changes.stage(change{entity: r.m.name, op: "update", id: id, apply: func(ctx context.Context, tx *sqlx.Tx) (func(), error) {
		version := *r.m.version(e)
		args := append(r.m.values(e), id, version)
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("%s %d at version %d: %w", r.m.name, id, version, outbound.ErrConcurrencyConflict)
		}
		return func() { *r.m.version(e) = version + 1 }, nil
	}})
	return nil
}

func (r *Repository[T]) Delete(e *T) error {
	return r.DeleteByID(r.m.keyOf(e))
}

// DeleteByID stages a removal. An identity with no row is not an error.
func (r *Repository[T]) DeleteByID(id int64) error {
	if id == 0 {
		return fmt.Errorf("delete %s: %w", r.m.name, outbound.ErrIdentityMissing)
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", r.m.table, r.m.key)
	r.changes.stage(change{entity: r.m.name, op: "delete", id: id, apply: func(ctx context.Context, tx *sqlx.Tx) (func(), error) {
		_, err := tx.ExecContext(ctx, tx.Rebind(query), id)
		return nil, err
	}})
	return nil
}

// DeleteIfEmpty checks the relation again inside the commit transaction, so a child
// inserted after the caller's read keeps the parent alive.
func (r *Repository[T]) DeleteIfEmpty(id int64, relation string) error {
	if id == 0 {
		return fmt.Errorf("delete %s: %w", r.m.name, outbound.ErrIdentityMissing)
	}
	dep, ok := r.m.dependents[relation]
	if !ok {
		panic(fmt.Sprintf("database: %s has no dependent relation %q", r.m.name, relation))
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND NOT EXISTS (SELECT 1 FROM %s WHERE %s = ?)",
		r.m.table, r.m.key, dep.table, dep.fk)
	r.changes.stage(change{entity: r.m.name, op: "delete", id: id, apply: func(ctx context.Context, tx *sqlx.Tx) (func(), error) {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), id, id)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("%s %d is missing or has %s: %w",
				r.m.name, id, strings.ToLower(relation), outbound.ErrConcurrencyConflict)
		}
		return nil, nil
	}})
	return nil
}

// buildSelect panics on unknown columns or operators: those come from code, not input.
func (r *Repository[T]) buildSelect(q outbound.Query[T]) (string, []any) {
	var sb strings.Builder
	var args []any
	fmt.Fprintf(&sb, "SELECT %s FROM %s", r.m.selectList(), r.m.table)

	for i, c := range q.Where {
		r.mustColumn(c.Column)
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}

		switch c.Op {
		case outbound.OpEq, outbound.OpNe, outbound.OpLt, outbound.OpGt, outbound.OpLike:
			fmt.Fprintf(&sb, "%s %s ?", c.Column, c.Op)
			args = append(args, c.Value)
		case outbound.OpIn:
			values, ok := c.Value.([]any)
			if !ok {
				panic(fmt.Sprintf("database: IN on %s.%s expects []any, got %T", r.m.table, c.Column, c.Value))
			}
			if len(values) == 0 {
				sb.WriteString("1 = 0")
				continue
			}
			fmt.Fprintf(&sb, "%s IN (%s)", c.Column, placeholders(len(values)))
			args = append(args, values...)
		default:
			panic(fmt.Sprintf("database: unsupported operator %q on %s.%s", c.Op, r.m.table, c.Column))
		}
	}

	if len(q.OrderBy) > 0 {
		terms := make([]string, 0, len(q.OrderBy)+1)
		keyed := false
		for _, o := range q.OrderBy {
			r.mustColumn(o.Column)
			keyed = keyed || o.Column == r.m.key
			if o.Desc {
				terms = append(terms, o.Column+" DESC")
			} else {
				terms = append(terms, o.Column+" ASC")
			}
		}
		if !keyed {
			terms = append(terms, r.m.key+" ASC")
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}

	return r.db.Rebind(sb.String()), args
}

func (r *Repository[T]) mustColumn(column string) {
	if !r.m.hasColumn(column) {
		panic(fmt.Sprintf("database: %s has no column %q", r.m.table, column))
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
