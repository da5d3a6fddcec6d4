package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/209youngG/library-app/model"
)

var dialect = goqu.Dialect("postgres")

type Repo interface {
	Save(ctx context.Context, tx *sql.Tx, u *model.User) error
	FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindAllWithHistories(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, tx *sql.Tx, u *model.User) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
	DeleteAll(ctx context.Context, tx *sql.Tx) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Save(ctx context.Context, tx *sql.Tx, u *model.User) error {
	const q = `
INSERT INTO users (name, age)
VALUES ($1,$2)
RETURNING id`
	return tx.QueryRowContext(ctx, q, u.Name, u.Age).Scan(&u.ID)
}

func (r *repo) FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	const q = `
SELECT id, name, age
FROM users
WHERE id=$1`
	var u model.User
	if err := tx.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Age); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByName loads the user together with its loan histories in insertion
// order. Names are not unique; the first row wins. Returns (nil, nil) when
// absent.
func (r *repo) FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.User, error) {
	const q = `
SELECT id, name, age
FROM users
WHERE name=$1
ORDER BY id
LIMIT 1`
	var u model.User
	if err := tx.QueryRowContext(ctx, q, name).Scan(&u.ID, &u.Name, &u.Age); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	const hq = `
SELECT id, user_id, book_name, status
FROM user_loan_history
WHERE user_id=$1
ORDER BY id`
	rows, err := tx.QueryContext(ctx, hq, u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var h model.LoanHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.BookName, &h.Status); err != nil {
			return nil, err
		}
		u.Histories = append(u.Histories, h)
	}
	return &u, rows.Err()
}

func (r *repo) FindAll(ctx context.Context) ([]model.User, error) {
	const q = `
SELECT id, name, age
FROM users
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FindAllWithHistories fetches every user and its histories in a single
// left-join query and merges the rows in memory: one entry per user, users
// without histories included.
func (r *repo) FindAllWithHistories(ctx context.Context) ([]model.User, error) {
	sqlStr, args, err := dialect.From(goqu.T("users").As("u")).
		Select(
			goqu.I("u.id"), goqu.I("u.name"), goqu.I("u.age"),
			goqu.I("h.id").As("history_id"),
			goqu.I("h.book_name"), goqu.I("h.status"),
		).
		LeftJoin(
			goqu.T("user_loan_history").As("h"),
			goqu.On(goqu.I("h.user_id").Eq(goqu.I("u.id"))),
		).
		Order(goqu.I("u.id").Asc(), goqu.I("h.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	idx := make(map[int64]int)
	for rows.Next() {
		var (
			u         model.User
			historyID sql.NullInt64
			bookName  sql.NullString
			status    sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &historyID, &bookName, &status); err != nil {
			return nil, err
		}
		i, seen := idx[u.ID]
		if !seen {
			out = append(out, u)
			i = len(out) - 1
			idx[u.ID] = i
		}
		if historyID.Valid {
			out[i].Histories = append(out[i].Histories, model.LoanHistory{
				ID:       historyID.Int64,
				UserID:   u.ID,
				BookName: bookName.String,
				Status:   model.LoanStatus(status.String),
			})
		}
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, tx *sql.Tx, u *model.User) error {
	const q = `
UPDATE users
SET name=$2, age=$3
WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, u.ID, u.Name, u.Age)
	return err
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *repo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM users`)
	return err
}
