package book

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/jwtx"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	catalogsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/catalog"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
)

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/books  (staff)
func (h *Controller) Add(c echo.Context) error {
	if !jwtx.IsStaff(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	var req model.AddBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	b, err := h.Svc.Add(c.Request().Context(), req)
	if err != nil {
		switch {
		case catalogsvc.Code(err) == catalogsvc.ErrDuplicateID:
			return c.JSON(http.StatusConflict, echo.Map{"message": "a book with this id already exists"})
		case registrysvc.Code(err) == registrysvc.ErrCardAssignedToUser:
			return c.JSON(http.StatusConflict, echo.Map{"message": "card already registered to a user"})
		case registrysvc.Code(err) == registrysvc.ErrCardAssignedToBook:
			return c.JSON(http.StatusConflict, echo.Map{"message": "card already registered to another book"})
		default:
			h.Log.Error("book add error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, b)
}

// DELETE /v1/books/:id  (staff); borrowed books cannot be deleted
func (h *Controller) Delete(c echo.Context) error {
	if !jwtx.IsStaff(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch catalogsvc.Code(err) {
		case catalogsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case catalogsvc.ErrBorrowed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book is currently borrowed"})
		default:
			h.Log.Error("book delete error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("book list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		switch catalogsvc.Code(err) {
		case catalogsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		default:
			h.Log.Error("book detail error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, row)
}
