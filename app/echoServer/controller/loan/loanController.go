package loan

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/jwtx"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/model"
	historysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/history"
	lendingsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/lending"
)

// historyWindowMonths bounds the borrower dashboard's ledger view.
const historyWindowMonths = 6

type Controller struct {
	Svc     lendingsvc.Service
	History historysvc.Service
	Log     *slog.Logger
}

// POST /v1/books/:id/borrow  (students only)
func (h *Controller) Borrow(c echo.Context) error {
	p, err := jwtx.PrincipalFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if p.Role != model.RoleStudent {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "only students can borrow books"})
	}

	b, err := h.Svc.Borrow(c.Request().Context(), c.Param("id"), p.ID, time.Now())
	if err != nil {
		switch lendingsvc.Code(err) {
		case lendingsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case lendingsvc.ErrAlreadyBorrowed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book is already borrowed"})
		default:
			h.Log.Error("borrow failed", "book", c.Param("id"), "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "borrowed",
		"bookId":  b.ID,
		"dueDate": b.DueDate,
	})
}

// POST /v1/books/:id/return
func (h *Controller) Return(c echo.Context) error {
	p, err := jwtx.PrincipalFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	b, err := h.Svc.Return(c.Request().Context(), c.Param("id"), p.ID, time.Now())
	if err != nil {
		switch lendingsvc.Code(err) {
		case lendingsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case lendingsvc.ErrNotBorrowed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book is not currently borrowed"})
		case lendingsvc.ErrNotAuthorized:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "you can only return books you borrowed"})
		default:
			h.Log.Error("return failed", "book", c.Param("id"), "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "returned", "bookId": b.ID})
}

// GET /v1/me/loans
func (h *Controller) MyLoans(c echo.Context) error {
	p, err := jwtx.PrincipalFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.BorrowedBy(c.Request().Context(), p.ID, time.Now())
	if err != nil {
		h.Log.Error("loans lookup failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/me/history
func (h *Controller) MyHistory(c echo.Context) error {
	p, err := jwtx.PrincipalFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	since := time.Now().AddDate(0, -historyWindowMonths, 0)
	rows, err := h.History.ForBorrower(c.Request().Context(), p.ID, since)
	if err != nil {
		h.Log.Error("history lookup failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
