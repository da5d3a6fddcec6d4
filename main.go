// Package main library API.
//
// @title           library API
// @version         1.0
// @description     library management service (users, books, loans, statistics).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/209youngG/library-app/app/echoServer"
	bookctrl "github.com/209youngG/library-app/app/echoServer/controller/book"
	userctrl "github.com/209youngG/library-app/app/echoServer/controller/user"
	"github.com/209youngG/library-app/app/echoServer/validation"
	"github.com/209youngG/library-app/config"
	bookrepo "github.com/209youngG/library-app/repository/book"
	historyrepo "github.com/209youngG/library-app/repository/loanhistory"
	userrepo "github.com/209youngG/library-app/repository/user"
	booksvc "github.com/209youngG/library-app/service/book"
	usersvc "github.com/209youngG/library-app/service/user"
	"github.com/209youngG/library-app/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	br := bookrepo.New(db)
	ur := userrepo.New(db)
	hr := historyrepo.New(db)

	// services
	us := usersvc.New(db, ur, hr)
	bs := booksvc.New(db, br, ur, hr)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User: userC,
		Book: bookC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
