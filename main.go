// Package main RFID library kiosk API.
//
// @title           RFID Library API
// @version         1.0
// @description     Card arbitration and lending engine for the RFID library kiosk.
// @contact.name    Moinuddin Hasan
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer"
	accountctrl "github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/account"
	bookctrl "github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/book"
	loanctrl "github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/loan"
	scanctrl "github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/controller/scan"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/app/echoServer/validation"
	"github.com/Moinuddin-Hasan/RFID-Library-Management-System/config"
	readerrepo "github.com/Moinuddin-Hasan/RFID-Library-Management-System/repository/reader"
	storerepo "github.com/Moinuddin-Hasan/RFID-Library-Management-System/repository/store"
	authsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/auth"
	catalogsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/catalog"
	historysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/history"
	lendingsvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/lending"
	registrysvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/registry"
	scannersvc "github.com/Moinuddin-Hasan/RFID-Library-Management-System/service/scanner"
)

func main() {

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// kiosk clients: the device is both the card reader and the store
	store := storerepo.NewHTTP(cfg.KioskBaseURL)
	reader := readerrepo.NewHTTP(cfg.KioskBaseURL)

	// services
	reg := registrysvc.New(store)
	lend := lendingsvc.New(store)
	hist := historysvc.New(store)
	cat := catalogsvc.New(store, reg)
	as := authsvc.New(store, reg, cfg.JWTSecret)

	// scan arbitration
	modes := scannersvc.NewModeController()
	arb := scannersvc.NewArbitrator(reader, reg, lend, as, modes, log, scannersvc.Options{
		CaptureAttempts: cfg.CaptureAttempts,
		CaptureInterval: cfg.CaptureInterval,
		HoldDelay:       cfg.ReturnHoldDelay,
	})
	go arb.PollLoop(ctx, cfg.PollInterval)

	// controllers
	v := validator.New()
	accountC := &accountctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: cat, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: lend, History: hist, Log: log}
	scanC := &scanctrl.Controller{Arb: arb, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Account: accountC,
		Book:    bookC,
		Loan:    loanC,
		Scan:    scanC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "kiosk", cfg.KioskBaseURL, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
