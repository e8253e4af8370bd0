package model

// Favorite is membership of a book in a user's favorites, unique per
// (book, user). No counters are kept for favorites.
type Favorite struct {
	ID     int64 `json:"id"`
	BookID int64 `json:"book_id"`
	UserID int64 `json:"user_id"`
}
