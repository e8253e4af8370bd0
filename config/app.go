package config

import "time"

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	StripeAPIKey       string `env:"STRIPE_API_KEY"`
	CheckoutSuccessURL string `env:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string `env:"CHECKOUT_CANCEL_URL"`

	// Rental policy. The free flow hands out a short hold, the paid flow a
	// multi-day one; both feed the same conditional-insert path.
	FreeRentDuration time.Duration `env:"FREE_RENT_DURATION" default:"60s"`
	PaidRentDuration time.Duration `env:"PAID_RENT_DURATION" default:"720h"`
	MaxActiveRentals int           `env:"MAX_ACTIVE_RENTALS" default:"5"`

	ReaperSchedule string `env:"REAPER_SCHEDULE" default:"@every 1m"`
}
