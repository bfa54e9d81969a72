// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
)

// PrincipalFromContext reads the identity the auth middleware stored on
// the request. The core only ever sees this {id, role} pair.
func PrincipalFromContext(c echo.Context) (model.Principal, error) {
	id, ok := c.Get("login_id").(string)
	if !ok || id == "" {
		return model.Principal{}, errors.New("no principal in context")
	}
	role, _ := c.Get("role").(string)
	return model.Principal{ID: id, Role: model.Role(role)}, nil
}

// IsStaff reports whether the request principal has the staff role.
func IsStaff(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == string(model.RoleStaff)
}
