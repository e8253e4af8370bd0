package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Maksim124512M/LibraFlow/model"
	bookrepo "github.com/Maksim124512M/LibraFlow/repository/book"
)

type ErrCode string

const (
	ErrNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrForbidden  ErrCode = "FORBIDDEN"
	ErrISBNTaken  ErrCode = "ISBN_TAKEN"
	ErrBadPayload ErrCode = "BAD_PAYLOAD"
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

type Filter = bookrepo.Filter

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context, f Filter) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, actor model.Actor, b *model.Book) error
	List(ctx context.Context, f Filter) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, actor model.Actor, b *model.Book) error
	Delete(ctx context.Context, actor model.Actor, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, actor model.Actor, b *model.Book) error {
	if !actor.Role.Elevated() {
		return makeErr(ErrForbidden)
	}
	if b.Title == "" || b.Author == "" || b.ISBN == "" || b.Price < 0 {
		return makeErr(ErrBadPayload)
	}
	if err := s.r.Create(ctx, b); err != nil {
		if isISBNTaken(err) {
			return makeErr(ErrISBNTaken)
		}
		return err
	}
	return nil
}

func isISBNTaken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(strings.ToLower(pgErr.ConstraintName), "isbn")
}

func (s *service) List(ctx context.Context, f Filter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, actor model.Actor, b *model.Book) error {
	if !actor.Role.Elevated() {
		return makeErr(ErrForbidden)
	}
	if err := s.r.Update(ctx, b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		if isISBNTaken(err) {
			return makeErr(ErrISBNTaken)
		}
		return err
	}
	return nil
}

// Delete removes the book and, through the store's cascade rules, every
// rental, rating, review and favorite that references it.
func (s *service) Delete(ctx context.Context, actor model.Actor, id int64) error {
	if !actor.Role.Elevated() {
		return makeErr(ErrForbidden)
	}
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound)
	}
	return nil
}
