// model/rental.go
package model

import "time"

// Rental is a time-bounded hold on a book. At most one row exists per
// (book, renter) pair; the reaper deletes rows once rent_end passes.
type Rental struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	RenterID  int64     `json:"renter_id"`
	RentStart time.Time `json:"rent_start"`
	RentEnd   time.Time `json:"rent_end"`
}

// Active reports whether the rental has not yet expired.
func (r Rental) Active(now time.Time) bool {
	return r.RentEnd.After(now)
}
