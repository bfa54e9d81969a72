package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/account"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/book"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/loan"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/scan"
)

type C struct {
	Account   *account.Controller
	Book      *book.Controller
	Loan      *loan.Controller
	Scan      *scan.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public: the index page runs before anyone is logged in. Scan
	// outcome and the card-driven return flow are poll endpoints.
	pub := e.Group("/v1")
	pub.POST("/login", c.Account.Login)
	pub.GET("/scan/outcome", c.Scan.Outcome)
	pub.POST("/returns/session", c.Scan.StartReturn)
	pub.DELETE("/returns/session", c.Scan.CancelReturn)
	pub.GET("/returns/session", c.Scan.ReturnStatus)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// principal extraction: sub is the login id, role rides alongside
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenObj := ctx.Get("user")
			if tokenObj == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tokenObj.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, _ := claims["role"].(string)
			ctx.Set("login_id", sub)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Books
	auth.GET("/books", c.Book.List)
	auth.GET("/books/:id", c.Book.Detail)
	// Staff endpoints
	auth.POST("/books", c.Book.Add)
	auth.DELETE("/books/:id", c.Book.Delete)

	// Accounts (staff)
	auth.GET("/accounts", c.Account.List)
	auth.POST("/accounts", c.Account.Register)
	auth.DELETE("/accounts/:type/:id", c.Account.Delete)

	// Card capture for registration forms (staff)
	auth.POST("/capture/user-card", c.Scan.CaptureUserCard)
	auth.POST("/capture/book-card", c.Scan.CaptureBookCard)

	// Lending
	auth.POST("/books/:id/borrow", c.Loan.Borrow)
	auth.POST("/books/:id/return", c.Loan.Return)
	auth.GET("/me/loans", c.Loan.MyLoans)
	auth.GET("/me/history", c.Loan.MyHistory)
}
