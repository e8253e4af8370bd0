package rating

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Maksim124512M/LibraFlow/model"
)

type ErrCode string

const (
	ErrBookNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrRatingNotFound ErrCode = "RATING_NOT_FOUND"
	ErrNotOwner       ErrCode = "NOT_OWNER"
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

// Liked reports the outcome of a like call. Already means the user had
// liked the book before; the repeat call changed nothing.
type Liked struct {
	Rating  *model.Rating
	Already bool
}

type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)
	InsertIfAbsent(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error)
	FindForBookForUpdate(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error)
	Delete(ctx context.Context, tx *sql.Tx, ratingID int64) error
	AdjustBookRating(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error
}

type Service interface {
	// Like: record the user's like and bump the book counter once.
	Like(ctx context.Context, userID, bookID int64) (*Liked, error)

	// Dislike: remove the like and take the counter back down. Owner or
	// elevated role only.
	Dislike(ctx context.Context, actor model.Actor, bookID int64) error
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

// Like inserts the rating row and increments books.rating in one
// transaction. The insert is conditional on the (book, user) unique key,
// so a duplicate call commits nothing.
func (s *service) Like(ctx context.Context, userID, bookID int64) (_ *Liked, err error) {
	exists, err := s.r.CheckBookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrBookNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rating, created, err := s.r.InsertIfAbsent(ctx, tx, bookID, userID)
	if err != nil {
		return nil, err
	}
	if created {
		if err = s.r.AdjustBookRating(ctx, tx, bookID, 1); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &Liked{Rating: rating, Already: !created}, nil
}

func (s *service) Dislike(ctx context.Context, actor model.Actor, bookID int64) (err error) {
	exists, err := s.r.CheckBookExists(ctx, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return makeErr(ErrBookNotFound)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rating, err := s.r.FindForBookForUpdate(ctx, tx, bookID, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrRatingNotFound)
		}
		return err
	}
	if rating.UserID != actor.ID && !actor.Role.Elevated() {
		return makeErr(ErrNotOwner)
	}

	if err = s.r.Delete(ctx, tx, rating.ID); err != nil {
		return err
	}
	if err = s.r.AdjustBookRating(ctx, tx, bookID, -1); err != nil {
		return err
	}
	return tx.Commit()
}
