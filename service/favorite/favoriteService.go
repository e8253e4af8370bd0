package favoritesvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Maksim124512M/LibraFlow/model"
	favoriterepo "github.com/Maksim124512M/LibraFlow/repository/favorite"
)

type ErrCode string

const (
	ErrBookNotFound     ErrCode = "BOOK_NOT_FOUND"
	ErrFavoriteNotFound ErrCode = "FAVORITE_NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Added reports the outcome of an Add call; duplicates are not errors.
type Added struct {
	Favorite *model.Favorite
	Already  bool
}

type ListRow = favoriterepo.ListRow

type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)
	InsertIfAbsent(ctx context.Context, bookID, userID int64) (*model.Favorite, bool, error)
	Find(ctx context.Context, bookID, userID int64) (*model.Favorite, error)
	Delete(ctx context.Context, favoriteID int64) error
	ListByUser(ctx context.Context, userID int64) ([]ListRow, error)
}

type Service interface {
	Add(ctx context.Context, userID, bookID int64) (*Added, error)
	Remove(ctx context.Context, userID, bookID int64) error
	ListMine(ctx context.Context, userID int64) ([]ListRow, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Add(ctx context.Context, userID, bookID int64) (*Added, error) {
	exists, err := s.r.CheckBookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrBookNotFound)
	}

	fav, created, err := s.r.InsertIfAbsent(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}
	return &Added{Favorite: fav, Already: !created}, nil
}

func (s *service) Remove(ctx context.Context, userID, bookID int64) error {
	fav, err := s.r.Find(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrFavoriteNotFound)
		}
		return err
	}
	return s.r.Delete(ctx, fav.ID)
}

func (s *service) ListMine(ctx context.Context, userID int64) ([]ListRow, error) {
	return s.r.ListByUser(ctx, userID)
}
