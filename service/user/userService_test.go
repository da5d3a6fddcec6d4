// service/user/user_service_test.go
package usersvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/209youngG/library-app/model"
	usersvc "github.com/209youngG/library-app/service/user"
	"github.com/209youngG/library-app/util/apperr"
)

type userRepoMock struct {
	saveFn             func(ctx context.Context, tx *sql.Tx, u *model.User) error
	findByIDFn         func(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	findByNameFn       func(ctx context.Context, tx *sql.Tx, name string) (*model.User, error)
	findAllFn          func(ctx context.Context) ([]model.User, error)
	findAllHistoriesFn func(ctx context.Context) ([]model.User, error)
	updateFn           func(ctx context.Context, tx *sql.Tx, u *model.User) error
	deleteFn           func(ctx context.Context, tx *sql.Tx, id int64) error
}

func (m *userRepoMock) Save(ctx context.Context, tx *sql.Tx, u *model.User) error {
	if m.saveFn == nil {
		return nil
	}
	return m.saveFn(ctx, tx, u)
}
func (m *userRepoMock) FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, tx, id)
}
func (m *userRepoMock) FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.User, error) {
	if m.findByNameFn == nil {
		return nil, nil
	}
	return m.findByNameFn(ctx, tx, name)
}
func (m *userRepoMock) FindAll(ctx context.Context) ([]model.User, error) {
	if m.findAllFn == nil {
		return nil, nil
	}
	return m.findAllFn(ctx)
}
func (m *userRepoMock) FindAllWithHistories(ctx context.Context) ([]model.User, error) {
	if m.findAllHistoriesFn == nil {
		return nil, nil
	}
	return m.findAllHistoriesFn(ctx)
}
func (m *userRepoMock) Update(ctx context.Context, tx *sql.Tx, u *model.User) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, tx, u)
}
func (m *userRepoMock) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, tx, id)
}

type historyRepoMock struct {
	deleteByUserIDFn func(ctx context.Context, tx *sql.Tx, userID int64) error
}

func (m *historyRepoMock) DeleteByUserID(ctx context.Context, tx *sql.Tx, userID int64) error {
	if m.deleteByUserIDFn == nil {
		return nil
	}
	return m.deleteByUserIDFn(ctx, tx, userID)
}

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestSaveUser_Success(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	age := 20
	users := &userRepoMock{
		saveFn: func(ctx context.Context, tx *sql.Tx, u *model.User) error {
			require.Equal(t, "A", u.Name)
			require.Equal(t, 20, *u.Age)
			u.ID = 42
			return nil
		},
	}
	s := usersvc.New(db, users, &historyRepoMock{})

	id, err := s.SaveUser(context.Background(), "A", &age)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUser_BlankName(t *testing.T) {
	db, _ := newDB(t)
	s := usersvc.New(db, &userRepoMock{}, &historyRepoMock{})

	_, err := s.SaveUser(context.Background(), "  ", nil)
	require.Error(t, err)
	require.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestGetUsers_Projection(t *testing.T) {
	db, _ := newDB(t)
	age := 20
	users := &userRepoMock{
		findAllFn: func(ctx context.Context) ([]model.User, error) {
			return []model.User{
				{ID: 1, Name: "A", Age: &age},
				{ID: 2, Name: "B"},
			}, nil
		},
	}
	s := usersvc.New(db, users, &historyRepoMock{})

	rows, err := s.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, usersvc.UserResponse{ID: 1, Name: "A", Age: &age}, rows[0])
	require.Equal(t, usersvc.UserResponse{ID: 2, Name: "B", Age: nil}, rows[1])
}

func TestUpdateUserName_Success(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var updated *model.User
	users := &userRepoMock{
		findByIDFn: func(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "A"}, nil
		},
		updateFn: func(ctx context.Context, tx *sql.Tx, u *model.User) error {
			updated = u
			return nil
		},
	}
	s := usersvc.New(db, users, &historyRepoMock{})

	err := s.UpdateUserName(context.Background(), 1, "B")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "B", updated.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserName_NotFound(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := usersvc.New(db, &userRepoMock{}, &historyRepoMock{})

	err := s.UpdateUserName(context.Background(), 99, "B")
	require.Error(t, err)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Deleting a user removes its histories first, then the user row, inside one
// transaction.
func TestDeleteUser_CascadesToHistories(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var calls []string
	users := &userRepoMock{
		findByNameFn: func(ctx context.Context, tx *sql.Tx, name string) (*model.User, error) {
			return &model.User{ID: 7, Name: name}, nil
		},
		deleteFn: func(ctx context.Context, tx *sql.Tx, id int64) error {
			require.Equal(t, int64(7), id)
			calls = append(calls, "delete_user")
			return nil
		},
	}
	histories := &historyRepoMock{
		deleteByUserIDFn: func(ctx context.Context, tx *sql.Tx, userID int64) error {
			require.Equal(t, int64(7), userID)
			calls = append(calls, "delete_histories")
			return nil
		},
	}
	s := usersvc.New(db, users, histories)

	err := s.DeleteUser(context.Background(), "A")
	require.NoError(t, err)
	require.Equal(t, []string{"delete_histories", "delete_user"}, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NotFound(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := usersvc.New(db, &userRepoMock{}, &historyRepoMock{})

	err := s.DeleteUser(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserLoanHistories_Mapping(t *testing.T) {
	db, _ := newDB(t)
	users := &userRepoMock{
		findAllHistoriesFn: func(ctx context.Context) ([]model.User, error) {
			return []model.User{
				{
					ID:   1,
					Name: "A",
					Histories: []model.LoanHistory{
						{ID: 10, UserID: 1, BookName: "Clean Code", Status: model.StatusLoaned},
						{ID: 11, UserID: 1, BookName: "TDD", Status: model.StatusReturned},
					},
				},
				{ID: 2, Name: "B"},
			}, nil
		},
	}
	s := usersvc.New(db, users, &historyRepoMock{})

	rows, err := s.GetUserLoanHistories(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "A", rows[0].Name)
	require.Equal(t, []usersvc.BookHistoryResponse{
		{Name: "Clean Code", IsReturn: false},
		{Name: "TDD", IsReturn: true},
	}, rows[0].Books)

	// a user with zero loans still appears, with an empty (non-nil) list
	require.Equal(t, "B", rows[1].Name)
	require.NotNil(t, rows[1].Books)
	require.Empty(t, rows[1].Books)
}
