// app/echoServer/controller/account/accountController.go
package account

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/jwtx"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	authsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/auth"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new account
// @Summary      Register account
// @Description  Create a student or staff account; card UID optional and globally unique
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterAccountReq  true  "Account payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "duplicate id or card"
// @Router       /v1/accounts [post]
func (ct *Controller) Register(c echo.Context) error {
	if !jwtx.IsStaff(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}

	var req model.RegisterAccountReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	u, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case authsvc.Code(err) == authsvc.ErrDuplicateID:
			return echo.NewHTTPError(http.StatusConflict, "an account with this id already exists")
		case authsvc.Code(err) == authsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, "bad input")
		case registrysvc.Code(err) == registrysvc.ErrCardAssignedToUser:
			return echo.NewHTTPError(http.StatusConflict, "card already registered to another user")
		case registrysvc.Code(err) == registrysvc.ErrCardAssignedToBook:
			return echo.NewHTTPError(http.StatusConflict, "card already registered to a book")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered",
		"account": sanitize(*u),
	})
}

// Login
// @Summary      Login
// @Description  Login with studentId/username + password, returns JWT
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /v1/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid id, password, or account type")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
		"account": sanitize(*u),
	})
}

// DELETE /v1/accounts/:type/:id
func (ct *Controller) Delete(c echo.Context) error {
	if !jwtx.IsStaff(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	role := model.Role(c.Param("type"))
	if role != model.RoleStudent && role != model.RoleStaff {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid account type"})
	}

	if err := ct.Svc.Delete(c.Request().Context(), role, c.Param("id")); err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "account not found"})
		default:
			ct.Log.Error("account delete failed", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// GET /v1/accounts
func (ct *Controller) List(c echo.Context) error {
	if !jwtx.IsStaff(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	users, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("account list failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitize(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// sanitize strips the password hash before a record leaves the API.
func sanitize(u model.User) model.User {
	u.PasswordHash = ""
	return u
}
