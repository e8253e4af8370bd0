package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Maksim124512M/LibraFlow/model"
	rentalrepo "github.com/Maksim124512M/LibraFlow/repository/rental"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound   ErrCode = "BOOK_NOT_FOUND"
	ErrRentalNotFound ErrCode = "RENTAL_NOT_FOUND"
	ErrNotOwner       ErrCode = "NOT_OWNER"
	ErrRentLimit      ErrCode = "RENT_LIMIT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

// Rented reports the outcome of a rent call. Already means the caller held
// the book before this call; repeating a rent is not an error.
type Rented struct {
	Rental  *model.Rental
	Already bool
}

// HistoryRow = repository shape
type HistoryRow = rentalrepo.HistoryRow

type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)
	InsertIfAbsent(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error)
	CountActive(ctx context.Context, renterID int64, now time.Time) (int, error)
	FindForBook(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error)
	Delete(ctx context.Context, rentalID int64) error
	ListByRenter(ctx context.Context, renterID int64) ([]HistoryRow, error)
}

// Policy holds the rental knobs from config.
type Policy struct {
	RentDuration time.Duration
	MaxActive    int
}

type Service interface {
	// Rent: give the caller a hold on the book until now + RentDuration.
	Rent(ctx context.Context, userID, bookID int64) (*Rented, error)

	// Unrent: drop the rental; only the renter or an elevated role may.
	Unrent(ctx context.Context, actor model.Actor, bookID int64) error

	// MyHistory: list rentals for a user.
	MyHistory(ctx context.Context, userID int64) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	r Repo
	p Policy
}

func New(r Repo, p Policy) Service { return &service{r: r, p: p} }

func (s *service) Rent(ctx context.Context, userID, bookID int64) (*Rented, error) {
	exists, err := s.r.CheckBookExists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrBookNotFound)
	}

	now := time.Now().UTC()
	if s.p.MaxActive > 0 {
		active, err := s.r.CountActive(ctx, userID, now)
		if err != nil {
			return nil, err
		}
		if active >= s.p.MaxActive {
			return nil, makeErr(ErrRentLimit)
		}
	}

	// One conditional insert; the unique (book, renter) key decides the
	// winner under concurrency and the loser gets the existing row back.
	rental, created, err := s.r.InsertIfAbsent(ctx, bookID, userID, now, now.Add(s.p.RentDuration))
	if err != nil {
		return nil, err
	}
	return &Rented{Rental: rental, Already: !created}, nil
}

func (s *service) Unrent(ctx context.Context, actor model.Actor, bookID int64) error {
	exists, err := s.r.CheckBookExists(ctx, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return makeErr(ErrBookNotFound)
	}

	rental, err := s.r.FindForBook(ctx, bookID, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrRentalNotFound)
		}
		return err
	}
	if rental.RenterID != actor.ID && !actor.Role.Elevated() {
		return makeErr(ErrNotOwner)
	}
	return s.r.Delete(ctx, rental.ID)
}

func (s *service) MyHistory(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return s.r.ListByRenter(ctx, userID)
}
