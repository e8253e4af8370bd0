package payment

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Maksim124512M/LibraFlow/app/echoServer/jwtx"
	paymentsvc "github.com/Maksim124512M/LibraFlow/service/payment"
)

type Controller struct {
	Svc paymentsvc.Service
	Log *slog.Logger
}

// POST /v1/books/:id/rent/checkout
func (h *Controller) InitiateRent(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.InitiateRent(c.Request().Context(), uid, bookID)
	if err != nil {
		switch paymentsvc.Code(err) {
		case paymentsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case paymentsvc.ErrGateway:
			h.Log.Error("checkout session", "err", err)
			return c.JSON(http.StatusBadGateway, echo.Map{"message": "payment provider error"})
		default:
			h.Log.Error("initiate rent", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	if out.Already {
		return c.JSON(http.StatusOK, echo.Map{"message": "You have already rented this book"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"checkout_url": out.CheckoutURL,
		"session_id":   out.SessionID,
	})
}

// POST /v1/payment/stripe  (webhook, no auth)
func (h *Controller) HandleStripe(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable body"})
	}

	rental, err := h.Svc.HandleStripe(c.Request().Context(), raw)
	if err != nil {
		h.Log.Error("stripe webhook", "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "payment rejected"})
	}
	if rental == nil {
		// Stale or irrelevant event; acknowledged so the provider stops
		// retrying.
		return c.JSON(http.StatusOK, echo.Map{"message": "ignored"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok", "rental_id": rental.ID})
}
