package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// loadIncludes resolves an include list against m's relations. Paths sharing a head
// are loaded once: "Groups,Groups.Students" issues one query per hop.
func loadIncludes[T any](ctx context.Context, db *sqlx.DB, m *mapping[T], rows []T, include string) error {
	heads, rests := splitIncludes(include)
	for _, head := range heads {
		rel, ok := m.relations[head]
		if !ok {
			panic(fmt.Sprintf("database: %s has no relation %q", m.name, head))
		}
		if err := rel(ctx, db, rows, strings.Join(rests[head], ",")); err != nil {
			return err
		}
	}
	return nil
}

func splitIncludes(include string) ([]string, map[string][]string) {
	var heads []string
	rests := make(map[string][]string)
	for _, path := range strings.Split(include, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		head, rest, _ := strings.Cut(path, ".")
		if head == "" {
			panic(fmt.Sprintf("database: malformed include path %q", path))
		}
		if _, seen := rests[head]; !seen {
			heads = append(heads, head)
			rests[head] = nil
		}
		if rest != "" {
			rests[head] = append(rests[head], rest)
		}
	}
	return heads, rests
}

// hasMany loads the children pointing at each row through fk. Every row receives a
// non-nil slice, empty when it has no children.
func hasMany[P, C any](parent *mapping[P], child *mapping[C], fk string, parentOf func(*C) int64, assign func(*P, []C)) relation[P] {
	return func(ctx context.Context, db *sqlx.DB, rows []P, rest string) error {
		ids := make([]int64, 0, len(rows))
		for i := range rows {
			ids = append(ids, parent.keyOf(&rows[i]))
		}
		children, err := selectIn(ctx, db, child, fk, ids)
		if err != nil {
			return err
		}
		if err := loadIncludes(ctx, db, child, children, rest); err != nil {
			return err
		}

		byParent := make(map[int64][]C, len(rows))
		for i := range children {
			pid := parentOf(&children[i])
			byParent[pid] = append(byParent[pid], children[i])
		}
		for i := range rows {
			set := byParent[parent.keyOf(&rows[i])]
			if set == nil {
				set = []C{}
			}
			assign(&rows[i], set)
		}
		return nil
	}
}

// belongsTo loads the parent referenced by each row. Rows sharing a parent get
// separate copies of it.
func belongsTo[C, P any](parent *mapping[P], parentOf func(*C) int64, assign func(*C, *P)) relation[C] {
	return func(ctx context.Context, db *sqlx.DB, rows []C, rest string) error {
		seen := make(map[int64]struct{}, len(rows))
		ids := make([]int64, 0, len(rows))
		for i := range rows {
			id := parentOf(&rows[i])
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		parents, err := selectIn(ctx, db, parent, parent.key, ids)
		if err != nil {
			return err
		}
		if err := loadIncludes(ctx, db, parent, parents, rest); err != nil {
			return err
		}

		byID := make(map[int64]int, len(parents))
		for i := range parents {
			byID[parent.keyOf(&parents[i])] = i
		}
		for i := range rows {
			if idx, ok := byID[parentOf(&rows[i])]; ok {
				p := parents[idx]
				assign(&rows[i], &p)
			}
		}
		return nil
	}
}

func selectIn[T any](ctx context.Context, db *sqlx.DB, m *mapping[T], column string, ids []int64) ([]T, error) {
	out := []T{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (?) ORDER BY %s", m.selectList(), m.table, column, m.key), ids)
	if err != nil {
		return nil, fmt.Errorf("build include query for %s: %w", m.table, err)
	}
	if err := db.SelectContext(ctx, &out, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load %s: %w", m.table, classify(err))
	}
	return out, nil
}
