package user

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	usersvc "github.com/209youngG/library-app/service/user"
	"github.com/209youngG/library-app/util/apperr"
)

type Controller struct {
	Svc usersvc.Service
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

// POST /user
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	id, err := h.Svc.SaveUser(c.Request().Context(), req.Name, req.Age)
	if err != nil {
		if code := statusOf(err); code != http.StatusInternalServerError {
			return c.JSON(code, echo.Map{"message": err.Error()})
		}
		h.Log.Error("user create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /user
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.GetUsers(c.Request().Context())
	if err != nil {
		h.Log.Error("user list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PUT /user
func (h *Controller) UpdateName(c echo.Context) error {
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	if err := h.Svc.UpdateUserName(c.Request().Context(), req.ID, req.Name); err != nil {
		if code := statusOf(err); code != http.StatusInternalServerError {
			return c.JSON(code, echo.Map{"message": err.Error()})
		}
		h.Log.Error("user update error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusOK)
}

// DELETE /user?name=
func (h *Controller) Delete(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}
	if err := h.Svc.DeleteUser(c.Request().Context(), name); err != nil {
		if code := statusOf(err); code != http.StatusInternalServerError {
			return c.JSON(code, echo.Map{"message": err.Error()})
		}
		h.Log.Error("user delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusOK)
}

// GET /user/loan
func (h *Controller) LoanHistories(c echo.Context) error {
	rows, err := h.Svc.GetUserLoanHistories(c.Request().Context())
	if err != nil {
		h.Log.Error("user loan histories error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
