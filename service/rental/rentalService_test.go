// service/rental/rental_service_test.go
package rental_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Maksim124512M/LibraFlow/model"
	rentalsvc "github.com/Maksim124512M/LibraFlow/service/rental"
)

type repoMock struct {
	checkBookFn    func(ctx context.Context, bookID int64) (bool, error)
	insertFn       func(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error)
	countActiveFn  func(ctx context.Context, renterID int64, now time.Time) (int, error)
	findForBookFn  func(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error)
	deleteFn       func(ctx context.Context, rentalID int64) error
	listByRenterFn func(ctx context.Context, renterID int64) ([]rentalsvc.HistoryRow, error)
}

func (m *repoMock) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	return m.checkBookFn(ctx, bookID)
}
func (m *repoMock) InsertIfAbsent(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error) {
	return m.insertFn(ctx, bookID, renterID, start, end)
}
func (m *repoMock) CountActive(ctx context.Context, renterID int64, now time.Time) (int, error) {
	if m.countActiveFn == nil {
		return 0, nil
	}
	return m.countActiveFn(ctx, renterID, now)
}
func (m *repoMock) FindForBook(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error) {
	return m.findForBookFn(ctx, bookID, preferRenter)
}
func (m *repoMock) Delete(ctx context.Context, rentalID int64) error {
	return m.deleteFn(ctx, rentalID)
}
func (m *repoMock) ListByRenter(ctx context.Context, renterID int64) ([]rentalsvc.HistoryRow, error) {
	return m.listByRenterFn(ctx, renterID)
}

var policy = rentalsvc.Policy{RentDuration: time.Minute, MaxActive: 5}

func TestRent_CreatesWithConfiguredWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		insertFn: func(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error) {
			gotStart, gotEnd = start, end
			return &model.Rental{ID: 1, BookID: bookID, RenterID: renterID, RentStart: start, RentEnd: end}, true, nil
		},
	}
	s := rentalsvc.New(m, policy)

	out, err := s.Rent(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("Rent error: %v", err)
	}
	if out.Already {
		t.Fatal("fresh rent reported as already rented")
	}
	if got := gotEnd.Sub(gotStart); got != policy.RentDuration {
		t.Fatalf("rent window = %v; want %v", got, policy.RentDuration)
	}
}

func TestRent_IdempotentOnSecondCall(t *testing.T) {
	existing := &model.Rental{ID: 9, BookID: 42, RenterID: 7}
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		insertFn: func(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error) {
			return existing, false, nil
		},
	}
	s := rentalsvc.New(m, policy)

	out, err := s.Rent(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("Rent error: %v", err)
	}
	if !out.Already {
		t.Fatal("expected Already for existing rental")
	}
	if out.Rental.ID != existing.ID {
		t.Fatalf("got rental id %d; want the winner's row %d", out.Rental.ID, existing.ID)
	}
}

func TestRent_BookNotFound(t *testing.T) {
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return false, nil },
	}
	s := rentalsvc.New(m, policy)

	_, err := s.Rent(context.Background(), 7, 404)
	if rentalsvc.Code(err) != rentalsvc.ErrBookNotFound {
		t.Fatalf("got %v; want BOOK_NOT_FOUND", err)
	}
}

func TestRent_ActiveLimit(t *testing.T) {
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		countActiveFn: func(ctx context.Context, renterID int64, now time.Time) (int, error) {
			return 5, nil
		},
		insertFn: func(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error) {
			t.Fatal("insert must not run when the limit is hit")
			return nil, false, nil
		},
	}
	s := rentalsvc.New(m, policy)

	_, err := s.Rent(context.Background(), 7, 42)
	if rentalsvc.Code(err) != rentalsvc.ErrRentLimit {
		t.Fatalf("got %v; want RENT_LIMIT", err)
	}
}

func TestUnrent_OwnerAndElevated(t *testing.T) {
	rentalRow := &model.Rental{ID: 3, BookID: 42, RenterID: 7}
	deleted := 0
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		findForBookFn: func(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error) {
			return rentalRow, nil
		},
		deleteFn: func(ctx context.Context, rentalID int64) error { deleted++; return nil },
	}
	s := rentalsvc.New(m, policy)

	owner := model.Actor{ID: 7, Role: model.RoleMember}
	if err := s.Unrent(context.Background(), owner, 42); err != nil {
		t.Fatalf("owner unrent: %v", err)
	}
	librarian := model.Actor{ID: 99, Role: model.RoleLibrarian}
	if err := s.Unrent(context.Background(), librarian, 42); err != nil {
		t.Fatalf("librarian unrent: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted %d rentals; want 2", deleted)
	}
}

func TestUnrent_ForbiddenForStranger(t *testing.T) {
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		findForBookFn: func(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error) {
			return &model.Rental{ID: 3, BookID: 42, RenterID: 7}, nil
		},
		deleteFn: func(ctx context.Context, rentalID int64) error {
			t.Fatal("delete must not run for a stranger")
			return nil
		},
	}
	s := rentalsvc.New(m, policy)

	stranger := model.Actor{ID: 8, Role: model.RoleMember}
	err := s.Unrent(context.Background(), stranger, 42)
	if rentalsvc.Code(err) != rentalsvc.ErrNotOwner {
		t.Fatalf("got %v; want NOT_OWNER", err)
	}
}

func TestUnrent_NotFound(t *testing.T) {
	m := &repoMock{
		checkBookFn: func(ctx context.Context, bookID int64) (bool, error) { return true, nil },
		findForBookFn: func(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := rentalsvc.New(m, policy)

	err := s.Unrent(context.Background(), model.Actor{ID: 7, Role: model.RoleMember}, 42)
	if rentalsvc.Code(err) != rentalsvc.ErrRentalNotFound {
		t.Fatalf("got %v; want RENTAL_NOT_FOUND", err)
	}
}
