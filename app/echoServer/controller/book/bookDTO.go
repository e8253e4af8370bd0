package book

type BookReq struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Description   string  `json:"description"`
	Genre         string  `json:"genre" validate:"required"`
	PublishedYear int     `json:"published_year" validate:"required,gt=0"`
	ISBN          string  `json:"isbn" validate:"required,max=13"`
	Price         float64 `json:"price" validate:"gte=0"`
}
