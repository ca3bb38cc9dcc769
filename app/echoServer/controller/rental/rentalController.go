package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	rs "librarydesk/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Checkout handles POST /v1/rentals
// @Summary Check out a book (creates a rental)
// @Tags rentals
// @Accept json
// @Produce json
// @Param payload body CheckoutReq true "Checkout payload"
// @Success 201 {object} model.RentalDetail
// @Failure 400,404,409,500 {object} map[string]any
// @Router /v1/rentals [post]
func (h *Controller) Checkout(c echo.Context) error {
	var req CheckoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start_date and end_date are required"})
	}

	out, err := h.Svc.Checkout(c.Request().Context(), rs.CheckoutReq{
		BookID:    req.BookID,
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		case rs.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case rs.ErrBookUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Book is not available"})
		default:
			h.Log.Error("rental checkout", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out)
}

// Return handles POST /v1/rentals/:id/return
// @Summary Return a rented book
// @Tags rentals
// @Produce json
// @Success 200 {object} model.RentalDetail
// @Failure 400,404,409,500 {object} map[string]any
// @Router /v1/rentals/{id}/return [post]
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Rental not found"})
		case rs.ErrAlreadyReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Book already returned"})
		default:
			h.Log.Error("rental return", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Extend handles POST /v1/rentals/:id/extend
// @Summary Extend a rental once
// @Tags rentals
// @Accept json
// @Produce json
// @Param payload body ExtendReq true "Extension payload"
// @Success 200 {object} model.RentalDetail
// @Failure 400,404,409,500 {object} map[string]any
// @Router /v1/rentals/{id}/extend [post]
func (h *Controller) Extend(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ExtendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	out, err := h.Svc.Extend(c.Request().Context(), id, req.EndDate)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Rental not found"})
		case rs.ErrExtendReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Cannot extend a returned rental"})
		case rs.ErrAlreadyExtended:
			return c.JSON(http.StatusConflict, echo.Map{"message": "Rental already extended"})
		case rs.ErrEndDateMissing:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "New end date is required"})
		default:
			h.Log.Error("rental extend", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// List handles GET /v1/rentals
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Detail handles GET /v1/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if rs.Code(err) == rs.ErrRentalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Rental not found"})
		}
		h.Log.Error("rental detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/rentals/:id. Plain record maintenance; it
// does not touch book availability.
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Update(c.Request().Context(), req.toModel(id))
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Rental not found"})
		case rs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		case rs.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		default:
			h.Log.Error("rental update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/rentals/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if rs.Code(err) == rs.ErrRentalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Rental not found"})
		}
		h.Log.Error("rental delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}
