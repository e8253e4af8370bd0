package bookrepo

import (
	"context"
	"database/sql"

	"github.com/Maksim124512M/LibraFlow/model"
)

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	Genre  string
	Author string
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context, f Filter) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, author, description, genre, published_year, isbn, price)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, rating, created_at`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Description, b.Genre, b.PublishedYear, b.ISBN, b.Price,
	).Scan(&b.ID, &b.Rating, &b.CreatedAt)
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.Book, error) {
	const q = `
	SELECT id, title, author, description, genre, published_year, isbn, price, rating, created_at
	FROM books
	WHERE ($1 = '' OR genre = $1)
	AND ($2 = '' OR author ILIKE '%' || $2 || '%')
	ORDER BY title, id`
	rows, err := r.db.QueryContext(ctx, q, f.Genre, f.Author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre,
			&b.PublishedYear, &b.ISBN, &b.Price, &b.Rating, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
	SELECT id, title, author, description, genre, published_year, isbn, price, rating, created_at
	FROM books
	WHERE id = $1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre,
		&b.PublishedYear, &b.ISBN, &b.Price, &b.Rating, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
	UPDATE books
	SET title = $2, author = $3, description = $4, genre = $5,
		published_year = $6, isbn = $7, price = $8
	WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Author, b.Description, b.Genre, b.PublishedYear, b.ISBN, b.Price)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the book; rentals, ratings, reviews and favorites go with
// it via ON DELETE CASCADE.
func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
