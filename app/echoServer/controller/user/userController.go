package user

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"libraryrental/app/echoServer/jwtx"
	"libraryrental/model"
	usersvc "libraryrental/service/user"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// GET /api/users/me
func (h *Controller) Me(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	u, err := h.Svc.Me(c.Request().Context(), uid)
	if err != nil {
		if err == usersvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		h.Log.Error("user me", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, u)
}

// GET /api/users  (admin)
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}
