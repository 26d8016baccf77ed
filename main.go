// Package main library rental API.
//
// @title           Library Rental API
// @version         1.0
// @description     Library rental service (catalog, accounts, borrow/return, checkout, donations).
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

	"libraryrental/app/echoServer"
	authctrl "libraryrental/app/echoServer/controller/auth"
	bookctrl "libraryrental/app/echoServer/controller/book"
	donationctrl "libraryrental/app/echoServer/controller/donation"
	rentalctrl "libraryrental/app/echoServer/controller/rental"
	transactionctrl "libraryrental/app/echoServer/controller/transaction"
	userctrl "libraryrental/app/echoServer/controller/user"
	"libraryrental/app/echoServer/validation"
	"libraryrental/config"
	bookrepo "libraryrental/repository/book"
	donationrepo "libraryrental/repository/donation"
	rentalrepo "libraryrental/repository/rental"
	transactionrepo "libraryrental/repository/transaction"
	userrepo "libraryrental/repository/user"
	authsvc "libraryrental/service/auth"
	"libraryrental/service/availability"
	booksvc "libraryrental/service/book"
	donationsvc "libraryrental/service/donation"
	rentalsvc "libraryrental/service/rental"
	transactionsvc "libraryrental/service/transaction"
	usersvc "libraryrental/service/user"
	"libraryrental/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)
	tr := transactionrepo.New(db)
	dr := donationrepo.New(db)

	// services
	guard := availability.New(br)
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	rs := rentalsvc.New(br, guard, rr)
	ts := transactionsvc.New(br, guard, tr)
	ds := donationsvc.New(dr)
	us := usersvc.New(ur)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	transactionC := &transactionctrl.Controller{Svc: ts, Log: log}
	donationC := &donationctrl.Controller{Svc: ds, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Book:        bookC,
		Rental:      rentalC,
		Transaction: transactionC,
		Donation:    donationC,
		User:        userC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
