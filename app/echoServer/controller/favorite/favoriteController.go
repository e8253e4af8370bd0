package favorite

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Maksim124512M/LibraFlow/app/echoServer/jwtx"
	favoritesvc "github.com/Maksim124512M/LibraFlow/service/favorite"
)

type Controller struct {
	Svc favoritesvc.Service
	Log *slog.Logger
}

// POST /v1/books/:id/favorite
func (h *Controller) Add(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Add(c.Request().Context(), uid, bookID)
	if err != nil {
		if favoritesvc.Code(err) == favoritesvc.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("favorite add", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if out.Already {
		return c.JSON(http.StatusOK, echo.Map{
			"message":  "Book is already in favorites",
			"favorite": out.Favorite,
		})
	}
	return c.JSON(http.StatusCreated, out.Favorite)
}

// DELETE /v1/books/:id/favorite
func (h *Controller) Remove(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Remove(c.Request().Context(), uid, bookID); err != nil {
		if favoritesvc.Code(err) == favoritesvc.ErrFavoriteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "favorite not found"})
		}
		h.Log.Error("favorite remove", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /v1/favorites/my
func (h *Controller) ListMine(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("favorite list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
