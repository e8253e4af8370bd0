package model

// Rating is a user's like on a book, unique per (book, user). The book's
// aggregate rating counter moves only together with a row here, in the
// same transaction.
type Rating struct {
	ID     int64 `json:"id"`
	BookID int64 `json:"book_id"`
	UserID int64 `json:"user_id"`
}
