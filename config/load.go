package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

func Load() App {
	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),
		Env:         getenv("APP_ENV", "dev"),

		StripeAPIKey:       os.Getenv("STRIPE_API_KEY"),
		CheckoutSuccessURL: getenv("CHECKOUT_SUCCESS_URL", "https://localhost/pay/success?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURL:  getenv("CHECKOUT_CANCEL_URL", "https://localhost/pay/cancel"),

		FreeRentDuration: getduration("FREE_RENT_DURATION", 60*time.Second),
		PaidRentDuration: getduration("PAID_RENT_DURATION", 30*24*time.Hour),
		MaxActiveRentals: getint("MAX_ACTIVE_RENTALS", 5),

		ReaperSchedule: getenv("REAPER_SCHEDULE", "@every 1m"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("bad int env, using default", "key", k, "value", v)
		return def
	}
	return i
}

func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("bad duration env, using default", "key", k, "value", v)
		return def
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
