// repository/rental/repo.go
package rentalrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Maksim124512M/LibraFlow/model"
)

type HistoryRow struct {
	RentalID  int64     `json:"rental_id"`
	BookID    int64     `json:"book_id"`
	BookTitle string    `json:"book_title"`
	RentStart time.Time `json:"rent_start"`
	RentEnd   time.Time `json:"rent_end"`
}

type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)

	// InsertIfAbsent creates the rental unless a row for (book, renter)
	// already exists. created=false means the caller lost the race or the
	// rental was already there; the returned row is the surviving one.
	InsertIfAbsent(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error)

	CountActive(ctx context.Context, renterID int64, now time.Time) (int, error)
	FindForRenter(ctx context.Context, bookID, renterID int64) (*model.Rental, error)
	FindForBook(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error)
	Delete(ctx context.Context, rentalID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ListByRenter(ctx context.Context, renterID int64) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) InsertIfAbsent(ctx context.Context, bookID, renterID int64, start, end time.Time) (*model.Rental, bool, error) {
	// Single conditional insert guarded by the (book_id, renter_id) unique
	// constraint. Two concurrent calls produce exactly one row; the loser
	// falls through to the SELECT and observes the winner's row.
	const ins = `
		INSERT INTO rentals (book_id, renter_id, rent_start, rent_end)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (book_id, renter_id) DO NOTHING
		RETURNING id, book_id, renter_id, rent_start, rent_end`
	rental := &model.Rental{}
	err := r.db.QueryRowContext(ctx, ins, bookID, renterID, start, end).Scan(
		&rental.ID, &rental.BookID, &rental.RenterID, &rental.RentStart, &rental.RentEnd)
	if err == nil {
		return rental, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	const sel = `
		SELECT id, book_id, renter_id, rent_start, rent_end
		FROM rentals
		WHERE book_id = $1 AND renter_id = $2`
	err = r.db.QueryRowContext(ctx, sel, bookID, renterID).Scan(
		&rental.ID, &rental.BookID, &rental.RenterID, &rental.RentStart, &rental.RentEnd)
	if err != nil {
		return nil, false, err
	}
	return rental, false, nil
}

func (r *repo) CountActive(ctx context.Context, renterID int64, now time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM rentals
		WHERE renter_id = $1
		AND rent_end > $2`
	var n int
	err := r.db.QueryRowContext(ctx, q, renterID, now).Scan(&n)
	return n, err
}

func (r *repo) FindForRenter(ctx context.Context, bookID, renterID int64) (*model.Rental, error) {
	const q = `
		SELECT id, book_id, renter_id, rent_start, rent_end
		FROM rentals
		WHERE book_id = $1 AND renter_id = $2`
	rental := &model.Rental{}
	err := r.db.QueryRowContext(ctx, q, bookID, renterID).Scan(
		&rental.ID, &rental.BookID, &rental.RenterID, &rental.RentStart, &rental.RentEnd)
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// FindForBook returns the caller's own rental of the book when there is
// one, otherwise any rental of the book. The second case exists so that
// elevated roles can remove someone else's rental.
func (r *repo) FindForBook(ctx context.Context, bookID, preferRenter int64) (*model.Rental, error) {
	const q = `
		SELECT id, book_id, renter_id, rent_start, rent_end
		FROM rentals
		WHERE book_id = $1
		ORDER BY (renter_id = $2) DESC, id
		LIMIT 1`
	rental := &model.Rental{}
	err := r.db.QueryRowContext(ctx, q, bookID, preferRenter).Scan(
		&rental.ID, &rental.BookID, &rental.RenterID, &rental.RentStart, &rental.RentEnd)
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *repo) Delete(ctx context.Context, rentalID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, rentalID)
	return err
}

// DeleteExpired is the reaper's bulk delete. Concurrent runs race only on
// rows both would delete, so the duplicate run removes zero extra rows.
func (r *repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE rent_end <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) ListByRenter(ctx context.Context, renterID int64) ([]HistoryRow, error) {
	const q = `
			SELECT
			r.id         AS rental_id,
			r.book_id    AS book_id,
			b.title      AS book_title,
			r.rent_start AS rent_start,
			r.rent_end   AS rent_end
			FROM rentals r
			JOIN books b ON b.id = r.book_id
			WHERE r.renter_id = $1
			ORDER BY r.rent_start DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(&h.RentalID, &h.BookID, &h.BookTitle, &h.RentStart, &h.RentEnd); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
