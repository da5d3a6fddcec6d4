package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/209youngG/library-app/app/echoServer/controller/book"
	"github.com/209youngG/library-app/app/echoServer/controller/user"
)

type C struct {
	User *user.Controller
	Book *book.Controller
}

func Register(e *echo.Echo, c C) {
	// Users
	e.POST("/user", c.User.Create)
	e.GET("/user", c.User.List)
	e.PUT("/user", c.User.UpdateName)
	e.DELETE("/user", c.User.Delete)
	e.GET("/user/loan", c.User.LoanHistories)

	// Books
	e.POST("/book", c.Book.Create)
	e.POST("/book/loan", c.Book.Loan)
	e.PUT("/book/return", c.Book.Return)
	e.GET("/book/loan", c.Book.CountLoaned)
	e.GET("/book/stat", c.Book.Stats)
}
