package user

import (
	"errors"
	"log/slog"
	"net/http"

	"librarydesk/app/echoServer/validation"
	"librarydesk/model"
	usersvc "librarydesk/service/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create handles POST /v1/users (admin)
// @Summary Register a library user
// @Tags users
// @Accept json
// @Produce json
// @Param payload body model.CreateUserReq true "User payload"
// @Success 201 {object} model.LibraryUser
// @Failure 400,401,409,500 {object} map[string]any
// @Router /v1/users [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.FieldErrors(err),
		})
	}
	out, err := h.Svc.Create(c.Request().Context(), &model.LibraryUser{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		case errors.Is(err, usersvc.ErrIDTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "user id already taken"})
		case errors.Is(err, usersvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("user create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, out)
}

// Login handles POST /v1/users/login. Pure identity lookup; no
// password or token is involved.
// @Summary Login by user id
// @Tags users
// @Accept json
// @Produce json
// @Param payload body model.LoginReq true "Login payload"
// @Success 200 {object} model.LibraryUser
// @Failure 400,404,500 {object} map[string]any
// @Router /v1/users/login [post]
func (h *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	out, err := h.Svc.Login(c.Request().Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrIDRequired):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "User ID is required"})
		case errors.Is(err, usersvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		default:
			h.Log.Error("user login", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// List handles GET /v1/users
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// Detail handles GET /v1/users/:id
func (h *Controller) Detail(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		h.Log.Error("user detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/users/:id (admin). The id itself is
// immutable; only name and email change.
func (h *Controller) Update(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.FieldErrors(err),
		})
	}
	out, err := h.Svc.Update(c.Request().Context(), &model.LibraryUser{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case errors.Is(err, usersvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		case errors.Is(err, usersvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("user update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/users/:id (admin). The user's rentals go
// with them.
func (h *Controller) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		h.Log.Error("user delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}
