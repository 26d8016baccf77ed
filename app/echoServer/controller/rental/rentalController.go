package rental

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"libraryrental/app/echoServer/jwtx"
	rs "libraryrental/service/rental"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Checkout rents a batch of books
// @Summary      Checkout
// @Description  Rent each book in the batch for its date range. Items fail independently.
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        payload  body  CheckoutReq  true  "Checkout payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any "no rentals provided"
// @Failure      422  {object}  map[string]any "every item failed"
// @Router       /api/rent/checkout [post]
func (h *Controller) Checkout(c echo.Context) error {
	var req CheckoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No rentals provided"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	items := make([]rs.CheckoutItem, 0, len(req.Rentals))
	for _, r := range req.Rentals {
		// Unparseable dates leave zero times; the service rejects zero-valued
		// dates as an invalid date range without touching the book.
		start, _ := parseDate(r.StartDate)
		end, _ := parseDate(r.EndDate)
		items = append(items, rs.CheckoutItem{BookID: r.BookID, StartDate: start, EndDate: end})
	}

	out, err := h.Svc.Checkout(c.Request().Context(), uid, items, req.PaymentMethod)
	if err != nil {
		if err == rs.ErrNoItems {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "No rentals provided"})
		}
		h.Log.Error("checkout", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	// Every item failed: surface it at the HTTP level rather than a 200
	// with a null order id the caller has to remember to check.
	if out.OrderID == nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "Checkout failed",
			"orderId": nil,
			"results": out.Results,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Checkout processed",
		"orderId": out.OrderID,
		"results": out.Results,
	})
}

// GET /api/rentals
func (h *Controller) History(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.History(c.Request().Context(), uid, jwtx.IsAdmin(c))
	if err != nil {
		h.Log.Error("rental history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []rs.HistoryRow{}
	}
	return c.JSON(http.StatusOK, rows)
}
