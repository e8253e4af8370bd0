// Package main LibraFlow API.
//
// @title           LibraFlow API
// @version         1.0
// @description     Library service (catalog, rentals, ratings, reviews, favorites).
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

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Maksim124512M/LibraFlow/app/echoServer"
	authctrl "github.com/Maksim124512M/LibraFlow/app/echoServer/controller/auth"
	bookctrl "github.com/Maksim124512M/LibraFlow/app/echoServer/controller/book"
	favoritectrl "github.com/Maksim124512M/LibraFlow/app/echoServer/controller/favorite"
	paymentctrl "github.com/Maksim124512M/LibraFlow/app/echoServer/controller/payment"
	ratingctrl "github.com/Maksim124512M/LibraFlow/app/echoServer/controller/rating"
	rentalctrl "github.com/Maksim124512M/LibraFlow/app/echoServer/controller/rental"
	reviewctrl "github.com/Maksim124512M/LibraFlow/app/echoServer/controller/review"
	"github.com/Maksim124512M/LibraFlow/app/echoServer/validation"
	"github.com/Maksim124512M/LibraFlow/config"
	bookrepo "github.com/Maksim124512M/LibraFlow/repository/book"
	favoriterepo "github.com/Maksim124512M/LibraFlow/repository/favorite"
	ratingrepo "github.com/Maksim124512M/LibraFlow/repository/rating"
	rentalrepo "github.com/Maksim124512M/LibraFlow/repository/rental"
	reviewrepo "github.com/Maksim124512M/LibraFlow/repository/review"
	striperepo "github.com/Maksim124512M/LibraFlow/repository/stripe"
	userrepo "github.com/Maksim124512M/LibraFlow/repository/user"
	authsvc "github.com/Maksim124512M/LibraFlow/service/auth"
	booksvc "github.com/Maksim124512M/LibraFlow/service/book"
	favoritesvc "github.com/Maksim124512M/LibraFlow/service/favorite"
	paymentsvc "github.com/Maksim124512M/LibraFlow/service/payment"
	ratingsvc "github.com/Maksim124512M/LibraFlow/service/rating"
	rentalsvc "github.com/Maksim124512M/LibraFlow/service/rental"
	reviewsvc "github.com/Maksim124512M/LibraFlow/service/review"
	"github.com/Maksim124512M/LibraFlow/util/database"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB over pgx
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)
	gr := ratingrepo.New(db)
	vr := reviewrepo.New(db)
	fr := favoriterepo.New(db)
	sr := striperepo.NewHTTP(cfg.StripeAPIKey)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br)
	rs := rentalsvc.New(rr, rentalsvc.Policy{
		RentDuration: cfg.FreeRentDuration,
		MaxActive:    cfg.MaxActiveRentals,
	})
	gs := ratingsvc.New(db, gr)
	vs := reviewsvc.New(vr)
	fs := favoritesvc.New(fr)
	ps := paymentsvc.New(sr, ur, br, rr, paymentsvc.Policy{
		RentDuration: cfg.PaidRentDuration,
		SuccessURL:   cfg.CheckoutSuccessURL,
		CancelURL:    cfg.CheckoutCancelURL,
	})

	// expiry reaper
	reaper, err := rentalsvc.StartReaper(rentalsvc.NewCleaner(rr), cfg.ReaperSchedule, log)
	if err != nil {
		log.Error("reaper start failed", "err", err)
		os.Exit(1)
	}
	defer reaper.Stop()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, Log: log}
	ratingC := &ratingctrl.Controller{Svc: gs, Log: log}
	reviewC := &reviewctrl.Controller{Svc: vs, V: v, Log: log}
	favC := &favoritectrl.Controller{Svc: fs, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ps, Log: log}

	// echo
	e := echo.New()
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
		Auth:     authC,
		Book:     bookC,
		Rental:   rentalC,
		Rating:   ratingC,
		Review:   reviewC,
		Favorite: favC,
		Payment:  paymentC,

		JWTSecret: cfg.JWTSecret,
	})

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
