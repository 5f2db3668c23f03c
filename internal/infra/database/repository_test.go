package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
	"github.com/DioGolang/GoUniversity/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockFactory(t *testing.T) (*UnitOfWorkFactory, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUnitOfWorkFactory(sqlx.NewDb(db, DriverPostgres), logger.NewNop()), mock
}

func TestRepository_BuildSelect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := newRepository(sqlx.NewDb(db, DriverPostgres), groups, &changeSet{}, logger.NewNop())

	tests := []struct {
		name     string
		query    outbound.Query[entity.Group]
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filter no order",
			query:   outbound.Query[entity.Group]{},
			wantSQL: "SELECT group_id, course_id, name, version FROM study_groups",
		},
		{
			name: "filter and order with key tiebreaker",
			query: outbound.Query[entity.Group]{
				Where:   []outbound.Condition{outbound.Eq("course_id", int64(1)), outbound.Like("name", "SR-%")},
				OrderBy: []outbound.Order{outbound.Desc("name")},
			},
			wantSQL:  "SELECT group_id, course_id, name, version FROM study_groups WHERE course_id = $1 AND name LIKE $2 ORDER BY name DESC, group_id ASC",
			wantArgs: []any{int64(1), "SR-%"},
		},
		{
			name: "explicit key order is not repeated",
			query: outbound.Query[entity.Group]{
				OrderBy: []outbound.Order{outbound.Desc("group_id")},
			},
			wantSQL: "SELECT group_id, course_id, name, version FROM study_groups ORDER BY group_id DESC",
		},
		{
			name: "in list",
			query: outbound.Query[entity.Group]{
				Where: []outbound.Condition{outbound.In("group_id", int64(1), int64(2), int64(3))},
			},
			wantSQL:  "SELECT group_id, course_id, name, version FROM study_groups WHERE group_id IN ($1, $2, $3)",
			wantArgs: []any{int64(1), int64(2), int64(3)},
		},
		{
			name: "empty in list matches nothing",
			query: outbound.Query[entity.Group]{
				Where: []outbound.Condition{outbound.In("group_id"), outbound.Ne("name", "SR-01")},
			},
			wantSQL:  "SELECT group_id, course_id, name, version FROM study_groups WHERE 1 = 0 AND name <> $1",
			wantArgs: []any{"SR-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := repo.buildSelect(tt.query)

			assert.Equal(t, tt.wantSQL, gotSQL)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func TestUnitOfWork_CommitSQL(t *testing.T) {
	tests := []struct {
		name      string
		stage     func(uow outbound.UnitOfWork) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
		errMsg    string
	}{
		{
			name: "insert returns generated key",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Courses().Insert(&entity.Course{Name: "Course One", Description: "Desc 1"})
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO courses (name, description, version) VALUES ($1, $2, $3) RETURNING course_id")).
					WithArgs("Course One", "Desc 1", int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"course_id"}).AddRow(int64(9)))
				mock.ExpectCommit()
			},
		},
		{
			name: "update guarded by version",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Groups().Update(&entity.Group{GroupID: 5, CourseID: 1, Name: "SR-01", Version: 3})
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("UPDATE study_groups SET course_id = $1, name = $2, version = version + 1 WHERE group_id = $3 AND version = $4")).
					WithArgs(int64(1), "SR-01", int64(5), int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "update with no affected row is a conflict",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Groups().Update(&entity.Group{GroupID: 5, CourseID: 1, Name: "SR-01", Version: 3})
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE study_groups").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: outbound.ErrConcurrencyConflict,
		},
		{
			name: "delete ignores affected rows",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Students().DeleteByID(4)
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE student_id = $1")).
					WithArgs(int64(4)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
		},
		{
			name: "guarded delete checks dependents in the same statement",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Groups().DeleteIfEmpty(5, "Students")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM study_groups WHERE group_id = $1 AND NOT EXISTS (SELECT 1 FROM students WHERE group_id = $2)")).
					WithArgs(int64(5), int64(5)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "guarded delete with no affected row is a conflict",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Courses().DeleteIfEmpty(1, "Groups")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE course_id = $1 AND NOT EXISTS (SELECT 1 FROM study_groups WHERE course_id = $2)")).
					WithArgs(int64(1), int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: outbound.ErrConcurrencyConflict,
		},
		{
			name: "changes run in staging order and roll back together",
			stage: func(uow outbound.UnitOfWork) error {
				if err := uow.Students().DeleteByID(4); err != nil {
					return err
				}
				return uow.Groups().Insert(&entity.Group{CourseID: 99, Name: "SR-09"})
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM students").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("INSERT INTO study_groups").WillReturnError(&pq.Error{Code: "23503"})
				mock.ExpectRollback()
			},
			wantErr: outbound.ErrConstraintViolation,
		},
		{
			name: "serialization failure on commit is a conflict",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Students().DeleteByID(4)
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM students").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
			},
			wantErr: outbound.ErrConcurrencyConflict,
		},
		{
			name: "begin failure propagates",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Students().DeleteByID(4)
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("connection refused"))
			},
			errMsg: "begin transaction: connection refused",
		},
		{
			name: "rollback failure is reported",
			stage: func(uow outbound.UnitOfWork) error {
				return uow.Students().DeleteByID(4)
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM students").WillReturnError(errors.New("broken pipe"))
				mock.ExpectRollback().WillReturnError(errors.New("rollback lost"))
			},
			errMsg: "rb err: rollback lost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, mock := newMockFactory(t)
			tt.setupMock(mock)
			uow := f.New()
			require.NoError(t, tt.stage(uow))

			err := uow.Commit(context.Background())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUnitOfWork_CommitWritesBackIdentityAndVersion(t *testing.T) {
	f, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students").
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(int64(31)))
	mock.ExpectExec("UPDATE courses").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	uow := f.New()
	student := &entity.Student{GroupID: 1, FirstName: "Ivan", LastName: "Ivanenko"}
	course := &entity.Course{CourseID: 2, Name: "Course One", Description: "Desc 1", Version: 4}
	require.NoError(t, uow.Students().Insert(student))
	require.NoError(t, uow.Courses().Update(course))

	require.NoError(t, uow.Commit(context.Background()))

	assert.Equal(t, int64(31), student.StudentID)
	assert.Equal(t, int64(1), student.Version)
	assert.Equal(t, int64(5), course.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CommitWithNothingStagedSkipsStorage(t *testing.T) {
	f, mock := newMockFactory(t)

	err := f.New().Commit(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReadFailuresPropagate(t *testing.T) {
	f, mock := newMockFactory(t)
	mock.ExpectQuery("SELECT course_id, name, description, version FROM courses").
		WillReturnError(errors.New("db down"))
	mock.ExpectQuery("SELECT student_id").
		WillReturnError(errors.New("db down"))

	_, err := f.New().Courses().Get(context.Background(), outbound.Query[entity.Course]{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query courses: db down")

	_, err = f.New().Students().GetByID(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, outbound.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IncludeUsesOneQueryPerHop(t *testing.T) {
	f, mock := newMockFactory(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, group_id, first_name, last_name, version FROM students ORDER BY last_name ASC, student_id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "group_id", "first_name", "last_name", "version"}).
			AddRow(int64(1), int64(10), "Ivan", "Ivanenko", int64(1)).
			AddRow(int64(2), int64(10), "Petro", "Ivanenko", int64(1)).
			AddRow(int64(3), int64(11), "Roman", "Petrenko", int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT group_id, course_id, name, version FROM study_groups WHERE group_id IN ($1, $2) ORDER BY group_id")).
		WithArgs(int64(10), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "course_id", "name", "version"}).
			AddRow(int64(10), int64(1), "SR-01", int64(1)).
			AddRow(int64(11), int64(1), "SR-02", int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT course_id, name, description, version FROM courses WHERE course_id IN ($1) ORDER BY course_id")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "name", "description", "version"}).
			AddRow(int64(1), "Course One", "Desc 1", int64(1)))

	got, err := f.New().Students().Get(context.Background(), outbound.Query[entity.Student]{
		OrderBy: []outbound.Order{outbound.Asc("last_name")},
		Include: "Group.Course",
	})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "SR-01", got[0].Group.Name)
	assert.Equal(t, "SR-02", got[2].Group.Name)
	assert.Equal(t, "Course One", got[2].Group.Course.Name)
	assert.NotSame(t, got[0].Group, got[1].Group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassify(t *testing.T) {
	plain := errors.New("plain")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, outbound.ErrConcurrencyConflict},
		{"deadlock", &pq.Error{Code: "40P01"}, outbound.ErrConcurrencyConflict},
		{"foreign key", &pq.Error{Code: "23503"}, outbound.ErrConstraintViolation},
		{"not null", &pq.Error{Code: "23502"}, outbound.ErrConstraintViolation},
		{"other pq error", &pq.Error{Code: "08006"}, nil},
		{"plain error", plain, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)

			assert.ErrorIs(t, got, tt.err)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
			} else {
				assert.NotErrorIs(t, got, outbound.ErrConcurrencyConflict)
				assert.NotErrorIs(t, got, outbound.ErrConstraintViolation)
			}
		})
	}
	assert.Nil(t, classify(nil))
}
