// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	"libraryrental/model"
)

func UserIDFromContext(c echo.Context) (int64, error) {
	if id, ok := c.Get("user_id").(int64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("no user in context")
}

func RoleFromContext(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

func IsAdmin(c echo.Context) bool {
	return RoleFromContext(c) == model.RoleAdmin
}
