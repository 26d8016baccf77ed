package transaction

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"libraryrental/app/echoServer/jwtx"
	"libraryrental/service/availability"
	ts "libraryrental/service/transaction"
)

type Controller struct {
	Svc ts.Service
	Log *slog.Logger
}

// POST /api/transactions/borrow/:bookId
func (h *Controller) Borrow(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	book, err := h.Svc.Borrow(c.Request().Context(), uid, bookID)
	if err != nil {
		switch err {
		case availability.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		case availability.ErrUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Book not available"})
		default:
			h.Log.Error("borrow", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book borrowed", "book": book})
}

// POST /api/transactions/return/:bookId
func (h *Controller) Return(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	book, err := h.Svc.Return(c.Request().Context(), uid, bookID, jwtx.IsAdmin(c))
	if err != nil {
		switch err {
		case availability.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		case availability.ErrNotBorrowed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Book not borrowed"})
		case availability.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized"})
		default:
			h.Log.Error("return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Book returned", "book": book})
}

// GET /api/transactions
func (h *Controller) History(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.History(c.Request().Context(), uid, jwtx.IsAdmin(c))
	if err != nil {
		h.Log.Error("transaction history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []ts.HistoryRow{}
	}
	return c.JSON(http.StatusOK, rows)
}
