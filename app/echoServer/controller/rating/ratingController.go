package rating

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Maksim124512M/LibraFlow/app/echoServer/jwtx"
	ratingsvc "github.com/Maksim124512M/LibraFlow/service/rating"
)

type Controller struct {
	Svc ratingsvc.Service
	Log *slog.Logger
}

// POST /v1/books/:id/like
func (h *Controller) Like(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Like(c.Request().Context(), uid, bookID)
	if err != nil {
		if ratingsvc.Code(err) == ratingsvc.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("like", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if out.Already {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "You have already liked this book",
			"rating":  out.Rating,
		})
	}
	return c.JSON(http.StatusCreated, out.Rating)
}

// DELETE /v1/books/:id/like
func (h *Controller) Dislike(c echo.Context) error {
	actor, err := jwtx.ActorFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Dislike(c.Request().Context(), actor, bookID); err != nil {
		switch ratingsvc.Code(err) {
		case ratingsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case ratingsvc.ErrRatingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "like not found"})
		case ratingsvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		default:
			h.Log.Error("dislike", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Disliked successfully"})
}
