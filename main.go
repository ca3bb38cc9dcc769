// Package main library record-keeper API.
//
// @title           Library Desk API
// @version         1.0
// @description     Library record keeper (books, reviews, users, rentals).
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

	"librarydesk/app/echoServer"
	bookctrl "librarydesk/app/echoServer/controller/book"
	rentalctrl "librarydesk/app/echoServer/controller/rental"
	reviewctrl "librarydesk/app/echoServer/controller/review"
	userctrl "librarydesk/app/echoServer/controller/user"
	"librarydesk/app/echoServer/validation"
	"librarydesk/config"
	bookrepo "librarydesk/repository/book"
	rentalrepo "librarydesk/repository/rental"
	reviewrepo "librarydesk/repository/review"
	userrepo "librarydesk/repository/user"
	booksvc "librarydesk/service/book"
	rentalsvc "librarydesk/service/rental"
	reviewsvc "librarydesk/service/review"
	usersvc "librarydesk/service/user"
	"librarydesk/util/database"
	jwtutil "librarydesk/util/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
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

	if err := database.InitSchema(ctx, db); err != nil {
		log.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	// repos
	br := bookrepo.New(db)
	vr := reviewrepo.New(db)
	ur := userrepo.New(db)
	rr := rentalrepo.New(db)

	// services
	bs := booksvc.New(br)
	vs := reviewsvc.New(vr)
	us := usersvc.New(ur)
	rs := rentalsvc.New(db, rr)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: vs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	e.JSONSerializer = echoServer.JSONSerializer{}
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
		Book:   bookC,
		Review: reviewC,
		User:   userC,
		Rental: rentalC,

		JWTSecret: cfg.JWTSecret,
	})

	if cfg.Env == "dev" {
		// convenience token for poking the admin endpoints locally
		if tok, err := jwtutil.Issue(cfg.JWTSecret, "local-operator", "admin", 24); err == nil {
			log.Info("dev admin token", "token", tok)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
