package favoriterepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Maksim124512M/LibraFlow/model"
)

type ListRow struct {
	FavoriteID int64  `json:"favorite_id"`
	BookID     int64  `json:"book_id"`
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}

type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)
	InsertIfAbsent(ctx context.Context, bookID, userID int64) (*model.Favorite, bool, error)
	Find(ctx context.Context, bookID, userID int64) (*model.Favorite, error)
	Delete(ctx context.Context, favoriteID int64) error
	ListByUser(ctx context.Context, userID int64) ([]ListRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) InsertIfAbsent(ctx context.Context, bookID, userID int64) (*model.Favorite, bool, error) {
	const ins = `
		INSERT INTO favorites (book_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (book_id, user_id) DO NOTHING
		RETURNING id, book_id, user_id`
	fav := &model.Favorite{}
	err := r.db.QueryRowContext(ctx, ins, bookID, userID).Scan(&fav.ID, &fav.BookID, &fav.UserID)
	if err == nil {
		return fav, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}
	fav, err = r.Find(ctx, bookID, userID)
	return fav, false, err
}

func (r *repo) Find(ctx context.Context, bookID, userID int64) (*model.Favorite, error) {
	const q = `
		SELECT id, book_id, user_id
		FROM favorites
		WHERE book_id = $1 AND user_id = $2`
	fav := &model.Favorite{}
	err := r.db.QueryRowContext(ctx, q, bookID, userID).Scan(&fav.ID, &fav.BookID, &fav.UserID)
	if err != nil {
		return nil, err
	}
	return fav, nil
}

func (r *repo) Delete(ctx context.Context, favoriteID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, favoriteID)
	return err
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]ListRow, error) {
	const q = `
		SELECT f.id, f.book_id, b.title, b.author
		FROM favorites f
		JOIN books b ON b.id = f.book_id
		WHERE f.user_id = $1
		ORDER BY f.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		if err := rows.Scan(&row.FavoriteID, &row.BookID, &row.BookTitle, &row.BookAuthor); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
