package bookrepo

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
	Save(ctx context.Context, tx *sql.Tx, b *model.Book) error
	FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.Book, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	StatsByType(ctx context.Context) ([]model.BookStat, error)
	DeleteAll(ctx context.Context, tx *sql.Tx) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Save(ctx context.Context, tx *sql.Tx, b *model.Book) error {
	const q = `
INSERT INTO books (name, type)
VALUES ($1,$2)
RETURNING id`
	return tx.QueryRowContext(ctx, q, b.Name, b.Type).Scan(&b.ID)
}

// FindByName returns (nil, nil) when no book carries the name. Names are not
// unique; the first row wins, matching the original lookup contract.
func (r *repo) FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.Book, error) {
	const q = `
SELECT id, name, type
FROM books
WHERE name=$1
ORDER BY id
LIMIT 1`
	var b model.Book
	if err := tx.QueryRowContext(ctx, q, name).Scan(&b.ID, &b.Name, &b.Type); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) FindAll(ctx context.Context) ([]model.Book, error) {
	const q = `
SELECT id, name, type
FROM books
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Type); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// StatsByType groups in the database; the full book list never reaches the
// application.
func (r *repo) StatsByType(ctx context.Context) ([]model.BookStat, error) {
	sqlStr, args, err := dialect.From("books").
		Select(goqu.C("type"), goqu.COUNT("*").As("count")).
		GroupBy(goqu.C("type")).
		Order(goqu.C("type").Asc()).
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

	var out []model.BookStat
	for rows.Next() {
		var s model.BookStat
		if err := rows.Scan(&s.Type, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM books`)
	return err
}
