package echoServer

import (
	"net/http"

	"librarydesk/app/echoServer/controller/book"
	"librarydesk/app/echoServer/controller/rental"
	"librarydesk/app/echoServer/controller/review"
	"librarydesk/app/echoServer/controller/user"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Book   *book.Controller
	Review *review.Controller
	User   *user.Controller
	Rental *rental.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")

	pub.GET("/books", c.Book.List)
	pub.GET("/books/:id", c.Book.Detail)
	pub.POST("/books/:id/reviews", c.Review.CreateForBook)

	pub.POST("/reviews", c.Review.Create)
	pub.GET("/reviews", c.Review.List)
	pub.GET("/reviews/:id", c.Review.Detail)
	pub.PUT("/reviews/:id", c.Review.Update)
	pub.DELETE("/reviews/:id", c.Review.Delete)

	pub.POST("/users/login", c.User.Login)
	pub.GET("/users", c.User.List)
	pub.GET("/users/:id", c.User.Detail)

	pub.POST("/rentals", c.Rental.Checkout)
	pub.GET("/rentals", c.Rental.List)
	pub.GET("/rentals/:id", c.Rental.Detail)
	pub.PUT("/rentals/:id", c.Rental.Update)
	pub.DELETE("/rentals/:id", c.Rental.Delete)
	pub.POST("/rentals/:id/return", c.Rental.Return)
	pub.POST("/rentals/:id/extend", c.Rental.Extend)

	// Administrative lifecycle of books and users sits behind a bearer
	// token; tokens are minted out of band with util/jwt.Issue.
	admin := e.Group("/v1")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
	}))
	admin.Use(requireAdmin)

	admin.POST("/books", c.Book.Create)
	admin.PUT("/books/:id", c.Book.Update)
	admin.DELETE("/books/:id", c.Book.Delete)

	admin.POST("/users", c.User.Create)
	admin.PUT("/users/:id", c.User.Update)
	admin.DELETE("/users/:id", c.User.Delete)
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		tok, ok := ctx.Get("user").(*jwt.Token)
		if !ok || tok == nil {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		if role, _ := claims["role"].(string); role != "admin" {
			return ctx.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
		return next(ctx)
	}
}
