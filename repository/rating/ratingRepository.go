package ratingrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Maksim124512M/LibraFlow/model"
)

// Row mutations and the books.rating counter move inside one transaction,
// so every method here that touches either takes the caller's *sql.Tx.
type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)

	InsertIfAbsent(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error)
	FindForBookForUpdate(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error)
	Delete(ctx context.Context, tx *sql.Tx, ratingID int64) error
	AdjustBookRating(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) InsertIfAbsent(ctx context.Context, tx *sql.Tx, bookID, userID int64) (*model.Rating, bool, error) {
	const ins = `
		INSERT INTO ratings (book_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (book_id, user_id) DO NOTHING
		RETURNING id, book_id, user_id`
	rating := &model.Rating{}
	err := tx.QueryRowContext(ctx, ins, bookID, userID).Scan(&rating.ID, &rating.BookID, &rating.UserID)
	if err == nil {
		return rating, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	const sel = `
		SELECT id, book_id, user_id
		FROM ratings
		WHERE book_id = $1 AND user_id = $2`
	err = tx.QueryRowContext(ctx, sel, bookID, userID).Scan(&rating.ID, &rating.BookID, &rating.UserID)
	if err != nil {
		return nil, false, err
	}
	return rating, false, nil
}

// FindForBookForUpdate prefers the caller's own rating, falling back to
// any rating of the book so elevated roles can remove it. The row is
// locked until the surrounding transaction ends.
func (r *repo) FindForBookForUpdate(ctx context.Context, tx *sql.Tx, bookID, preferUser int64) (*model.Rating, error) {
	const q = `
		SELECT id, book_id, user_id
		FROM ratings
		WHERE book_id = $1
		ORDER BY (user_id = $2) DESC, id
		LIMIT 1
		FOR UPDATE`
	rating := &model.Rating{}
	err := tx.QueryRowContext(ctx, q, bookID, preferUser).Scan(&rating.ID, &rating.BookID, &rating.UserID)
	if err != nil {
		return nil, err
	}
	return rating, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, ratingID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, ratingID)
	return err
}

func (r *repo) AdjustBookRating(ctx context.Context, tx *sql.Tx, bookID int64, delta int64) error {
	const q = `
		UPDATE books
		SET rating = rating + $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, bookID, delta)
	return err
}
