package reviewrepo

import (
	"context"
	"database/sql"

	"github.com/Maksim124512M/LibraFlow/model"
)

type Repo interface {
	CheckBookExists(ctx context.Context, bookID int64) (bool, error)
	Create(ctx context.Context, rv *model.Review) error
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	ByID(ctx context.Context, id int64) (*model.Review, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) CheckBookExists(ctx context.Context, bookID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) Create(ctx context.Context, rv *model.Review) error {
	const q = `
		INSERT INTO reviews (book_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q, rv.BookID, rv.AuthorID, rv.Content).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
}

func (r *repo) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	const q = `
		SELECT id, book_id, author_id, content, created_at, updated_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY updated_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.AuthorID, &rv.Content, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Review, error) {
	const q = `
		SELECT id, book_id, author_id, content, created_at, updated_at
		FROM reviews
		WHERE id = $1`
	rv := &model.Review{}
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&rv.ID, &rv.BookID, &rv.AuthorID, &rv.Content, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *repo) UpdateContent(ctx context.Context, id int64, content string) error {
	const q = `
		UPDATE reviews
		SET content = $2,
			updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, content)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}
