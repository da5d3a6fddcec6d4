package booksvc

import (
	"context"
	"database/sql"

	"github.com/209youngG/library-app/model"
	"github.com/209youngG/library-app/util/apperr"
)

type BookRepo interface {
	Save(ctx context.Context, tx *sql.Tx, b *model.Book) error
	FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.Book, error)
	StatsByType(ctx context.Context) ([]model.BookStat, error)
}

type UserRepo interface {
	FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.User, error)
}

type HistoryRepo interface {
	Insert(ctx context.Context, tx *sql.Tx, h *model.LoanHistory) error
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.LoanStatus) error
	FindByBookNameAndStatus(ctx context.Context, tx *sql.Tx, bookName string, status model.LoanStatus) (*model.LoanHistory, error)
	CountByStatus(ctx context.Context, status model.LoanStatus) (int64, error)
}

type BookStatResponse = model.BookStat

type Service interface {
	SaveBook(ctx context.Context, name, category string) (int64, error)
	LoanBook(ctx context.Context, userName, bookName string) error
	ReturnBook(ctx context.Context, userName, bookName string) error
	CountLoanedBooks(ctx context.Context) (int64, error)
	GetBookStatistics(ctx context.Context) ([]BookStatResponse, error)
}

type service struct {
	db        *sql.DB
	books     BookRepo
	users     UserRepo
	histories HistoryRepo
}

func New(db *sql.DB, books BookRepo, users UserRepo, histories HistoryRepo) Service {
	return &service{db: db, books: books, users: users, histories: histories}
}

// SaveBook registers a book. Duplicate names are not rejected here.
func (s *service) SaveBook(ctx context.Context, name, category string) (id int64, err error) {
	bookType, err := model.ParseBookType(category)
	if err != nil {
		return 0, err
	}
	b, err := model.NewBook(name, bookType)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.books.Save(ctx, tx, b); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return b.ID, nil
}

// LoanBook loans a book to a user. A book may be on loan to at most one user
// system-wide, so any LOANED history for the name blocks the loan.
func (s *service) LoanBook(ctx context.Context, userName, bookName string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	book, err := s.books.FindByName(ctx, tx, bookName)
	if err != nil {
		return err
	}
	if book == nil {
		err = apperr.NotFound("book not found")
		return err
	}

	loaned, err := s.histories.FindByBookNameAndStatus(ctx, tx, bookName, model.StatusLoaned)
	if err != nil {
		return err
	}
	if loaned != nil {
		err = apperr.InvalidArgument("book already on loan")
		return err
	}

	user, err := s.users.FindByName(ctx, tx, userName)
	if err != nil {
		return err
	}
	if user == nil {
		err = apperr.NotFound("user not found")
		return err
	}

	if err = s.histories.Insert(ctx, tx, user.LoanBook(book)); err != nil {
		return err
	}
	return tx.Commit()
}

// ReturnBook delegates the history lookup to the user aggregate and persists
// the transition it made.
func (s *service) ReturnBook(ctx context.Context, userName, bookName string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	user, err := s.users.FindByName(ctx, tx, userName)
	if err != nil {
		return err
	}
	if user == nil {
		err = apperr.NotFound("user not found")
		return err
	}

	rec, err := user.ReturnBook(bookName)
	if err != nil {
		return err
	}
	if err = s.histories.UpdateStatus(ctx, tx, rec.ID, rec.Status); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) CountLoanedBooks(ctx context.Context) (int64, error) {
	return s.histories.CountByStatus(ctx, model.StatusLoaned)
}

func (s *service) GetBookStatistics(ctx context.Context) ([]BookStatResponse, error) {
	return s.books.StatsByType(ctx)
}
