package reviewsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Maksim124512M/LibraFlow/model"
)

type ErrCode string

const (
	ErrBookNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrReviewNotFound ErrCode = "REVIEW_NOT_FOUND"
	ErrNotAuthor      ErrCode = "NOT_AUTHOR"
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

type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)
	Create(ctx context.Context, rv *model.Review) error
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	ByID(ctx context.Context, id int64) (*model.Review, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, authorID, bookID int64, content string) (*model.Review, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)

	// Update: author only. Elevated roles do not get to rewrite reviews.
	Update(ctx context.Context, actor model.Actor, reviewID int64, content string) (*model.Review, error)

	// Delete: author or elevated role.
	Delete(ctx context.Context, actor model.Actor, reviewID int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, authorID, bookID int64, content string) (*model.Review, error) {
	exists, err := s.r.CheckBookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrBookNotFound)
	}

	rv := &model.Review{BookID: bookID, AuthorID: authorID, Content: content}
	if err := s.r.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	exists, err := s.r.CheckBookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrBookNotFound)
	}
	return s.r.ListByBook(ctx, bookID)
}

func (s *service) Update(ctx context.Context, actor model.Actor, reviewID int64, content string) (*model.Review, error) {
	rv, err := s.find(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.AuthorID != actor.ID {
		return nil, makeErr(ErrNotAuthor)
	}
	if err := s.r.UpdateContent(ctx, reviewID, content); err != nil {
		return nil, err
	}
	return s.find(ctx, reviewID)
}

func (s *service) Delete(ctx context.Context, actor model.Actor, reviewID int64) error {
	rv, err := s.find(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.AuthorID != actor.ID && !actor.Role.Elevated() {
		return makeErr(ErrNotAuthor)
	}
	return s.r.Delete(ctx, reviewID)
}

func (s *service) find(ctx context.Context, reviewID int64) (*model.Review, error) {
	rv, err := s.r.ByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrReviewNotFound)
		}
		return nil, err
	}
	return rv, nil
}
