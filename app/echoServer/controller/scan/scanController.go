package scan

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/jwtx"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
	scannersvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/scanner"
)

type Controller struct {
	Arb *scannersvc.Arbitrator
	Log *slog.Logger
}

// GET /v1/scan/outcome
//
// The index page polls this. An empty body with 204 means no card has
// been dispatched yet.
func (h *Controller) Outcome(c echo.Context) error {
	out := h.Arb.LastOutcome()
	if out == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/returns/session
func (h *Controller) StartReturn(c echo.Context) error {
	h.Arb.StartReturnSession(c.Request().Context())
	return c.JSON(http.StatusAccepted, h.Arb.ReturnSessionState())
}

// DELETE /v1/returns/session
func (h *Controller) CancelReturn(c echo.Context) error {
	h.Arb.CancelReturnSession()
	return c.JSON(http.StatusOK, echo.Map{"message": "cancelled"})
}

// GET /v1/returns/session
func (h *Controller) ReturnStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Arb.ReturnSessionState())
}

// POST /v1/capture/user-card  (staff)
func (h *Controller) CaptureUserCard(c echo.Context) error {
	return h.capture(c, scannersvc.ModeCaptureUser)
}

// POST /v1/capture/book-card  (staff)
func (h *Controller) CaptureBookCard(c echo.Context) error {
	return h.capture(c, scannersvc.ModeCaptureBook)
}

func (h *Controller) capture(c echo.Context, mode scannersvc.EngineMode) error {
	if !jwtx.IsStaff(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}

	uid, err := h.Arb.CaptureCard(c.Request().Context(), mode)
	if err != nil {
		switch {
		case scannersvc.Code(err) == scannersvc.ErrScanTimeout:
			return c.JSON(http.StatusRequestTimeout, echo.Map{"message": "no card detected, try again"})
		case scannersvc.Code(err) == scannersvc.ErrCancelled:
			return c.JSON(http.StatusConflict, echo.Map{"message": "capture cancelled by a newer request"})
		case registrysvc.Code(err) == registrysvc.ErrCardAssignedToUser:
			return c.JSON(http.StatusConflict, echo.Map{"message": "card already registered to a user"})
		case registrysvc.Code(err) == registrysvc.ErrCardAssignedToBook:
			return c.JSON(http.StatusConflict, echo.Map{"message": "card already registered to a book"})
		default:
			h.Log.Error("capture failed", "mode", mode, "err", err)
			return c.JSON(http.StatusBadGateway, echo.Map{"message": "reader unavailable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"uid": uid})
}
