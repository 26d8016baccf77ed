package donation

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"libraryrental/model"
	donationsvc "libraryrental/service/donation"
)

type Controller struct {
	Svc donationsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type DonationReq struct {
	Name           string `json:"name" validate:"required"`
	PublishingYear string `json:"publishing_year" validate:"required"`
	Quantity       int    `json:"quantity" validate:"required,gt=0"`
	Condition      string `json:"condition" validate:"required"`
	DonorName      string `json:"donor_name" validate:"required"`
	DonorEmail     string `json:"donor_email" validate:"required,email"`
	DonorPhone     string `json:"donor_phone" validate:"required"`
	DonorAddress   string `json:"donor_address" validate:"required"`
}

// POST /api/donate
func (h *Controller) Create(c echo.Context) error {
	var req DonationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Failed to save donation", "error": err.Error()})
	}
	d := &model.Donation{
		Name:           req.Name,
		PublishingYear: req.PublishingYear,
		Quantity:       req.Quantity,
		Condition:      req.Condition,
		DonorName:      req.DonorName,
		DonorEmail:     req.DonorEmail,
		DonorPhone:     req.DonorPhone,
		DonorAddress:   req.DonorAddress,
	}
	if err := h.Svc.Create(c.Request().Context(), d); err != nil {
		if err == donationsvc.ErrInvalidPayload {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Failed to save donation"})
		}
		h.Log.Error("donation create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Donation received", "donation": d})
}

// GET /api/donate  (admin)
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("donation list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if rows == nil {
		rows = []model.Donation{}
	}
	return c.JSON(http.StatusOK, rows)
}
