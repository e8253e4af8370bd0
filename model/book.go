// model/book.go
package model

import "time"

type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description,omitempty"`
	Genre         string    `json:"genre"`
	PublishedYear int       `json:"published_year"`
	ISBN          string    `json:"isbn"`
	Price         float64   `json:"price"`
	Rating        int64     `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}
