package review

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"librarydesk/app/echoServer/validation"
	"librarydesk/model"
	reviewsvc "librarydesk/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// CreateForBook handles POST /v1/books/:id/reviews
// @Summary Add a review to a book
// @Tags books
// @Accept json
// @Produce json
// @Param payload body ReviewReq true "Review payload"
// @Success 201 {object} model.Review
// @Failure 400,404,500 {object} map[string]any
// @Router /v1/books/{id}/reviews [post]
func (h *Controller) CreateForBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.FieldErrors(err),
		})
	}
	return h.create(c, bookID, req)
}

// Create handles POST /v1/reviews with the book id in the payload.
func (h *Controller) Create(c echo.Context) error {
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.FieldErrors(err),
		})
	}
	return h.create(c, req.BookID, req.ReviewReq)
}

func (h *Controller) create(c echo.Context, bookID int64, req ReviewReq) error {
	out, err := h.Svc.Create(c.Request().Context(), &model.Review{
		BookID:  bookID,
		User:    req.User,
		Rating:  *req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		if errors.Is(err, reviewsvc.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		}
		h.Log.Error("review create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, out)
}

// List handles GET /v1/reviews
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("review list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Detail handles GET /v1/reviews/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, reviewsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Review not found"})
		}
		h.Log.Error("review detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/reviews/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.FieldErrors(err),
		})
	}
	out, err := h.Svc.Update(c.Request().Context(), &model.Review{
		ID:      id,
		BookID:  req.BookID,
		User:    req.User,
		Rating:  *req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Review not found"})
		case errors.Is(err, reviewsvc.ErrBookNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		default:
			h.Log.Error("review update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/reviews/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, reviewsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Review not found"})
		}
		h.Log.Error("review delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}
