package model

import "time"

type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
