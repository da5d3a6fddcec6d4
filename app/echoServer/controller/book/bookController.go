package book

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	booksvc "github.com/209youngG/library-app/service/book"
	"github.com/209youngG/library-app/util/apperr"
	"github.com/209youngG/library-app/util/metrics"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func statusOf(err error) int {
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// POST /book
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	id, err := h.Svc.SaveBook(c.Request().Context(), req.Name, req.Type)
	if err != nil {
		if code := statusOf(err); code != http.StatusInternalServerError {
			return c.JSON(code, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// POST /book/loan
func (h *Controller) Loan(c echo.Context) error {
	var req LoanBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	err := h.Svc.LoanBook(c.Request().Context(), req.UserName, req.BookName)
	metrics.ObserveLoanOp("loan", err)
	if err != nil {
		if code := statusOf(err); code != http.StatusInternalServerError {
			return c.JSON(code, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book loan error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusOK)
}

// PUT /book/return
func (h *Controller) Return(c echo.Context) error {
	var req ReturnBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	err := h.Svc.ReturnBook(c.Request().Context(), req.UserName, req.BookName)
	metrics.ObserveLoanOp("return", err)
	if err != nil {
		if code := statusOf(err); code != http.StatusInternalServerError {
			return c.JSON(code, echo.Map{"message": err.Error()})
		}
		h.Log.Error("book return error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusOK)
}

// GET /book/loan
func (h *Controller) CountLoaned(c echo.Context) error {
	n, err := h.Svc.CountLoanedBooks(c.Request().Context())
	if err != nil {
		h.Log.Error("loan count error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// GET /book/stat
func (h *Controller) Stats(c echo.Context) error {
	rows, err := h.Svc.GetBookStatistics(c.Request().Context())
	if err != nil {
		h.Log.Error("book stats error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
