package paymentsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Maksim124512M/LibraFlow/model"
	striperepo "github.com/Maksim124512M/LibraFlow/repository/stripe"
)

type ErrCode string

const (
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrGateway      ErrCode = "GATEWAY"
)

type codedError struct {
	code ErrCode
	err  error
}

func (e codedError) Error() string {
	if e.err != nil {
		return string(e.code) + ": " + e.err.Error()
	}
	return string(e.code)
}
func (e codedError) Unwrap() error { return e.err }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode) error { return codedError{code: c} }

func wrapErr(c ErrCode, err error) error { return codedError{code: c, err: err} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const eventCheckoutCompleted = "checkout.session.completed"

// Initiated is the outcome of InitiateRent. Already short-circuits the
// checkout when the caller holds an unexpired rental; no session is
// created and no money moves.
type Initiated struct {
	CheckoutURL string
	SessionID   string
	Already     bool
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type BookRepo interface {
	ByID(ctx context.Context, id int64) (*model.Book, error)
}

type RentalRepo interface {
	FindForRenter(ctx context.Context, bookID, renterID int64) (*model.Rental, error)
	InsertIfAbsent(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error)
}

// Policy holds the paid-flow rental window, longer than the free one.
type Policy struct {
	RentDuration time.Duration
	SuccessURL   string
	CancelURL    string
}

type Service interface {
	// InitiateRent: create a checkout session for the book's price. The
	// rental itself is only materialized by the webhook after payment.
	InitiateRent(ctx context.Context, userID, bookID int64) (*Initiated, error)

	// HandleStripe: webhook entry point. nil, nil means the event was
	// irrelevant or referenced unknown ids and was deliberately ignored.
	HandleStripe(ctx context.Context, rawBody []byte) (*model.Rental, error)

	// FinalizeRent materializes the rental for a confirmed payment. It is
	// a pure function of (user, book): replays return the existing row.
	FinalizeRent(ctx context.Context, userID, bookID int64) (*model.Rental, error)
}

type service struct {
	gw      striperepo.Repo
	users   UserRepo
	books   BookRepo
	rentals RentalRepo
	p       Policy
}

func New(gw striperepo.Repo, users UserRepo, books BookRepo, rentals RentalRepo, p Policy) Service {
	return &service{gw: gw, users: users, books: books, rentals: rentals, p: p}
}

func (s *service) InitiateRent(ctx context.Context, userID, bookID int64) (*Initiated, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	book, err := s.books.ByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}

	rental, err := s.rentals.FindForRenter(ctx, bookID, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if rental != nil && rental.Active(time.Now().UTC()) {
		return &Initiated{Already: true}, nil
	}

	resp, err := s.gw.CreateSession(ctx, striperepo.CreateSessionReq{
		Amount:          book.Price,
		Description:     fmt.Sprintf("Rent %q by %s", book.Title, book.Author),
		CustomerEmail:   user.Email,
		ClientReference: strconv.FormatInt(userID, 10),
		Metadata:        map[string]string{"book_id": strconv.FormatInt(bookID, 10)},
		SuccessURL:      s.p.SuccessURL,
		CancelURL:       s.p.CancelURL,
	})
	if err != nil {
		return nil, wrapErr(ErrGateway, err)
	}
	return &Initiated{CheckoutURL: resp.CheckoutURL, SessionID: resp.SessionID}, nil
}

func (s *service) HandleStripe(ctx context.Context, rawBody []byte) (*model.Rental, error) {
	ev, err := s.gw.ParseEvent(rawBody)
	if err != nil {
		return nil, err
	}
	if ev.Type != eventCheckoutCompleted {
		return nil, nil
	}

	// The provider may retry or send stale events; unparseable references
	// are dropped the same way unknown ids are.
	userID, err := strconv.ParseInt(ev.ClientReference, 10, 64)
	if err != nil {
		return nil, nil
	}
	bookID, err := strconv.ParseInt(ev.Metadata["book_id"], 10, 64)
	if err != nil {
		return nil, nil
	}
	return s.FinalizeRent(ctx, userID, bookID)
}

func (s *service) FinalizeRent(ctx context.Context, userID, bookID int64) (*model.Rental, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if _, err := s.books.ByID(ctx, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// Same conditional insert as the free flow, so at-least-once webhook
	// delivery can never produce a second rental for the pair.
	now := time.Now().UTC()
	rental, _, err := s.rentals.InsertIfAbsent(ctx, bookID, userID, now, now.Add(s.p.RentDuration))
	if err != nil {
		return nil, err
	}
	return rental, nil
}
