// model/book.go
package model

import (
	"strings"

	"github.com/209youngG/library-app/util/apperr"
)

type BookType string

const (
	TypeComputer BookType = "COMPUTER"
	TypeEconomy  BookType = "ECONOMY"
	TypeSociety  BookType = "SOCIETY"
	TypeLanguage BookType = "LANGUAGE"
	TypeScience  BookType = "SCIENCE"
)

// ParseBookType maps a request category string onto the closed enum.
func ParseBookType(s string) (BookType, error) {
	switch t := BookType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeComputer, TypeEconomy, TypeSociety, TypeLanguage, TypeScience:
		return t, nil
	}
	return "", apperr.InvalidArgument("unknown book type: " + s)
}

type Book struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Type BookType `json:"type"`
}

// NewBook rejects blank names. Books never change after registration.
func NewBook(name string, bookType BookType) (*Book, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidArgument("book name must not be blank")
	}
	return &Book{Name: name, Type: bookType}, nil
}

type BookStat struct {
	Type  BookType `json:"type"`
	Count int64    `json:"count"`
}
