package book

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"librarydesk/app/echoServer/validation"
	booksvc "librarydesk/service/book"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create handles POST /v1/books (admin)
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param payload body BookReq true "Book payload"
// @Success 201 {object} model.BookDetail
// @Failure 400,401,500 {object} map[string]any
// @Router /v1/books [post]
func (h *Controller) Create(c echo.Context) error {
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.FieldErrors(err),
		})
	}
	out, err := h.Svc.Create(c.Request().Context(), req.toModel(0))
	if err != nil {
		if errors.Is(err, booksvc.ErrInvalid) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		}
		h.Log.Error("book create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, out)
}

// List handles GET /v1/books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Detail handles GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		}
		h.Log.Error("book detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/books/:id (admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.FieldErrors(err),
		})
	}
	out, err := h.Svc.Update(c.Request().Context(), req.toModel(id))
	if err != nil {
		switch {
		case errors.Is(err, booksvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		case errors.Is(err, booksvc.ErrInvalid):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			h.Log.Error("book update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/books/:id (admin). Rentals and reviews of
// the book go with it.
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, booksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		}
		h.Log.Error("book delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}
