package userrepo_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/209youngG/library-app/model"
	userrepo "github.com/209youngG/library-app/repository/user"
)

// The join fetch must yield one entry per user, histories attached in id
// order, and users without histories included with no records.
func TestFindAllWithHistories_MergesRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "name", "age", "history_id", "book_name", "status"}
	mock.ExpectQuery(`SELECT .+ FROM "users" AS "u" LEFT JOIN "user_loan_history" AS "h"`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "A", 20, 10, "Clean Code", "LOANED").
			AddRow(1, "A", 20, 11, "TDD", "RETURNED").
			AddRow(2, "B", nil, nil, nil, nil))

	r := userrepo.New(db)
	users, err := r.FindAllWithHistories(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.Equal(t, "A", users[0].Name)
	require.Equal(t, 20, *users[0].Age)
	require.Len(t, users[0].Histories, 2)
	require.Equal(t, "Clean Code", users[0].Histories[0].BookName)
	require.Equal(t, model.StatusLoaned, users[0].Histories[0].Status)
	require.Equal(t, "TDD", users[0].Histories[1].BookName)
	require.Equal(t, model.StatusReturned, users[0].Histories[1].Status)

	require.Equal(t, "B", users[1].Name)
	require.Nil(t, users[1].Age)
	require.Empty(t, users[1].Histories)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_SetsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("A", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	tx, err := db.Begin()
	require.NoError(t, err)

	r := userrepo.New(db)
	u := &model.User{Name: "A"}
	require.NoError(t, r.Save(context.Background(), tx, u))
	require.Equal(t, int64(7), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByName_LoadsHistoriesInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, age FROM users WHERE name=\$1`).
		WithArgs("A").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).AddRow(7, "A", nil))
	mock.ExpectQuery(`SELECT id, user_id, book_name, status FROM user_loan_history WHERE user_id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "book_name", "status"}).
			AddRow(10, 7, "Clean Code", "RETURNED").
			AddRow(11, 7, "Clean Code", "LOANED"))

	tx, err := db.Begin()
	require.NoError(t, err)

	r := userrepo.New(db)
	u, err := r.FindByName(context.Background(), tx, "A")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Len(t, u.Histories, 2)
	require.Equal(t, int64(10), u.Histories[0].ID)
	require.Equal(t, int64(11), u.Histories[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByName_Miss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, age FROM users WHERE name=\$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}))

	tx, err := db.Begin()
	require.NoError(t, err)

	r := userrepo.New(db)
	u, err := r.FindByName(context.Background(), tx, "missing")
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}
