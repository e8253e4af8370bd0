package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Maksim124512M/LibraFlow/app/echoServer/controller/auth"
	"github.com/Maksim124512M/LibraFlow/app/echoServer/controller/book"
	"github.com/Maksim124512M/LibraFlow/app/echoServer/controller/favorite"
	"github.com/Maksim124512M/LibraFlow/app/echoServer/controller/payment"
	"github.com/Maksim124512M/LibraFlow/app/echoServer/controller/rating"
	"github.com/Maksim124512M/LibraFlow/app/echoServer/controller/rental"
	"github.com/Maksim124512M/LibraFlow/app/echoServer/controller/review"
)

type C struct {
	Auth     *auth.Controller
	Book     *book.Controller
	Rental   *rental.Controller
	Rating   *rating.Controller
	Review   *review.Controller
	Favorite *favorite.Controller
	Payment  *payment.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// payment provider callback
	pub.POST("/payment/stripe", c.Payment.HandleStripe)

	// Auth
	authG := e.Group("/v1")
	authG.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))

	// Books
	authG.GET("/books", c.Book.List)
	authG.GET("/books/:id", c.Book.Detail)
	// Elevated endpoints; the service enforces the role check.
	authG.POST("/books", c.Book.Create)
	authG.PUT("/books/:id", c.Book.Update)
	authG.DELETE("/books/:id", c.Book.Delete)

	// Rentals
	authG.POST("/books/:id/rent", c.Rental.Rent)
	authG.DELETE("/books/:id/rent", c.Rental.Unrent)
	authG.GET("/rentals/my", c.Rental.MyHistory)

	// Paid rental flow
	authG.POST("/books/:id/rent/checkout", c.Payment.InitiateRent)

	// Ratings
	authG.POST("/books/:id/like", c.Rating.Like)
	authG.DELETE("/books/:id/like", c.Rating.Dislike)

	// Reviews
	authG.POST("/books/:id/reviews", c.Review.Create)
	authG.GET("/books/:id/reviews", c.Review.ListByBook)
	authG.PUT("/reviews/:id", c.Review.Update)
	authG.DELETE("/reviews/:id", c.Review.Delete)

	// Favorites
	authG.POST("/books/:id/favorite", c.Favorite.Add)
	authG.DELETE("/books/:id/favorite", c.Favorite.Remove)
	authG.GET("/favorites/my", c.Favorite.ListMine)
}
