package usersvc

import (
	"context"
	"database/sql"

	"github.com/209youngG/library-app/model"
	"github.com/209youngG/library-app/util/apperr"
)

type UserRepo interface {
	Save(ctx context.Context, tx *sql.Tx, u *model.User) error
	FindByID(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	FindByName(ctx context.Context, tx *sql.Tx, name string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindAllWithHistories(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, tx *sql.Tx, u *model.User) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
}

type HistoryRepo interface {
	DeleteByUserID(ctx context.Context, tx *sql.Tx, userID int64) error
}

// dto

type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

type BookHistoryResponse struct {
	Name     string `json:"name"`
	IsReturn bool   `json:"isReturn"`
}

type UserLoanHistoryResponse struct {
	Name  string                `json:"name"`
	Books []BookHistoryResponse `json:"books"`
}

type Service interface {
	SaveUser(ctx context.Context, name string, age *int) (int64, error)
	GetUsers(ctx context.Context) ([]UserResponse, error)
	UpdateUserName(ctx context.Context, id int64, name string) error
	DeleteUser(ctx context.Context, name string) error
	GetUserLoanHistories(ctx context.Context) ([]UserLoanHistoryResponse, error)
}

type service struct {
	db        *sql.DB
	users     UserRepo
	histories HistoryRepo
}

func New(db *sql.DB, users UserRepo, histories HistoryRepo) Service {
	return &service{db: db, users: users, histories: histories}
}

// SaveUser registers a user. Duplicate names are allowed.
func (s *service) SaveUser(ctx context.Context, name string, age *int) (id int64, err error) {
	u, err := model.NewUser(name, age)
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

	if err = s.users.Save(ctx, tx, u); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (s *service) GetUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{ID: u.ID, Name: u.Name, Age: u.Age})
	}
	return out, nil
}

func (s *service) UpdateUserName(ctx context.Context, id int64, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u, err := s.users.FindByID(ctx, tx, id)
	if err != nil {
		return err
	}
	if u == nil {
		err = apperr.NotFound("user not found")
		return err
	}

	u.UpdateName(name)
	if err = s.users.Update(ctx, tx, u); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteUser removes the user and, in the same transaction, every loan
// history it owns. When several users share the name, whichever row the
// lookup returns is deleted.
func (s *service) DeleteUser(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	u, err := s.users.FindByName(ctx, tx, name)
	if err != nil {
		return err
	}
	if u == nil {
		err = apperr.NotFound("user not found")
		return err
	}

	if err = s.histories.DeleteByUserID(ctx, tx, u.ID); err != nil {
		return err
	}
	if err = s.users.Delete(ctx, tx, u.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// GetUserLoanHistories returns one entry per user; users with no loans get an
// empty books list, never a missing one.
func (s *service) GetUserLoanHistories(ctx context.Context) ([]UserLoanHistoryResponse, error) {
	users, err := s.users.FindAllWithHistories(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserLoanHistoryResponse, 0, len(users))
	for _, u := range users {
		books := make([]BookHistoryResponse, 0, len(u.Histories))
		for _, h := range u.Histories {
			books = append(books, BookHistoryResponse{Name: h.BookName, IsReturn: h.IsReturn()})
		}
		out = append(out, UserLoanHistoryResponse{Name: u.Name, Books: books})
	}
	return out, nil
}
