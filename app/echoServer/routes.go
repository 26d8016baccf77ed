package echoServer

import (
	"github.com/labstack/echo/v4"

	"libraryrental/app/echoServer/controller/auth"
	"libraryrental/app/echoServer/controller/book"
	"libraryrental/app/echoServer/controller/donation"
	"libraryrental/app/echoServer/controller/rental"
	"libraryrental/app/echoServer/controller/transaction"
	"libraryrental/app/echoServer/controller/user"
)

type C struct {
	Auth        *auth.Controller
	Book        *book.Controller
	Rental      *rental.Controller
	Transaction *transaction.Controller
	Donation    *donation.Controller
	User        *user.Controller
	JWTSecret   string
}

func Register(e *echo.Echo, c C) {
	api := e.Group("/api")

	// Public
	api.POST("/auth/register", c.Auth.Register)
	api.POST("/auth/login", c.Auth.Login)
	api.GET("/books", c.Book.List)
	api.GET("/books/:id", c.Book.Detail)
	api.POST("/donate", c.Donation.Create)

	// Authenticated
	authed := e.Group("/api", JWTAuth(c.JWTSecret)...)
	authed.GET("/users/me", c.User.Me)
	authed.POST("/transactions/borrow/:bookId", c.Transaction.Borrow)
	authed.POST("/transactions/return/:bookId", c.Transaction.Return)
	authed.GET("/transactions", c.Transaction.History)
	authed.POST("/rent/checkout", c.Rental.Checkout)
	authed.GET("/rentals", c.Rental.History)

	// Admin
	admin := e.Group("/api", append(JWTAuth(c.JWTSecret), AdminOnly())...)
	admin.POST("/books", c.Book.Create)
	admin.PUT("/books/:id", c.Book.Update)
	admin.DELETE("/books/:id", c.Book.Delete)
	admin.GET("/users", c.User.List)
	admin.GET("/donate", c.Donation.List)
}
