package historyrepo

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
	Insert(ctx context.Context, tx *sql.Tx, h *model.LoanHistory) error
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.LoanStatus) error
	FindByBookNameAndStatus(ctx context.Context, tx *sql.Tx, bookName string, status model.LoanStatus) (*model.LoanHistory, error)
	CountByStatus(ctx context.Context, status model.LoanStatus) (int64, error)
	DeleteByUserID(ctx context.Context, tx *sql.Tx, userID int64) error
	DeleteAll(ctx context.Context, tx *sql.Tx) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, h *model.LoanHistory) error {
	const q = `
INSERT INTO user_loan_history (user_id, book_name, status)
VALUES ($1,$2,$3)
RETURNING id`
	return tx.QueryRowContext(ctx, q, h.UserID, h.BookName, h.Status).Scan(&h.ID)
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.LoanStatus) error {
	const q = `
UPDATE user_loan_history
SET status=$2
WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

// FindByBookNameAndStatus looks system-wide, across all users. Returns
// (nil, nil) when no record matches.
func (r *repo) FindByBookNameAndStatus(ctx context.Context, tx *sql.Tx, bookName string, status model.LoanStatus) (*model.LoanHistory, error) {
	sqlStr, args, err := dialect.From("user_loan_history").
		Select(goqu.C("id"), goqu.C("user_id"), goqu.C("book_name"), goqu.C("status")).
		Where(goqu.C("book_name").Eq(bookName), goqu.C("status").Eq(status)).
		Order(goqu.C("id").Asc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var h model.LoanHistory
	if err := tx.QueryRowContext(ctx, sqlStr, args...).Scan(&h.ID, &h.UserID, &h.BookName, &h.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (r *repo) CountByStatus(ctx context.Context, status model.LoanStatus) (int64, error) {
	sqlStr, args, err := dialect.From("user_loan_history").
		Select(goqu.COUNT("*")).
		Where(goqu.C("status").Eq(status)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *repo) DeleteByUserID(ctx context.Context, tx *sql.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM user_loan_history WHERE user_id=$1`, userID)
	return err
}

func (r *repo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM user_loan_history`)
	return err
}
