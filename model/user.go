// model/user.go
package model

import (
	"strings"

	"github.com/209youngG/library-app/util/apperr"
)

// User owns its loan histories: the slice is loaded with the user,
// mutated through LoanBook/ReturnBook, and deleted with the user.
type User struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Age       *int          `json:"age"`
	Histories []LoanHistory `json:"-"`
}

func NewUser(name string, age *int) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidArgument("user name must not be blank")
	}
	return &User{Name: name, Age: age}, nil
}

// UpdateName overwrites the name without re-checking blankness.
func (u *User) UpdateName(name string) { u.Name = name }

// LoanBook appends a LOANED record for the book's name and returns it so the
// caller can persist it. The already-on-loan check lives in the book service.
func (u *User) LoanBook(b *Book) *LoanHistory {
	u.Histories = append(u.Histories, LoanHistory{
		UserID:   u.ID,
		BookName: b.Name,
		Status:   StatusLoaned,
	})
	return &u.Histories[len(u.Histories)-1]
}

// ReturnBook transitions the first history entry, in insertion order, whose
// book name matches. The match ignores status: after a loan/return/loan
// sequence the earliest record is hit again.
func (u *User) ReturnBook(bookName string) (*LoanHistory, error) {
	for i := range u.Histories {
		if u.Histories[i].BookName == bookName {
			u.Histories[i].DoReturn()
			return &u.Histories[i], nil
		}
	}
	return nil, apperr.NotFound("no loan history for book: " + bookName)
}
