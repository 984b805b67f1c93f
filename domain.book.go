package main

import "context"

// Book represents a catalog book entity.
type Book struct {
	ID            string  `json:"id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Author        string  `json:"author" binding:"required"`
	Description   string  `json:"description"`
	CoverImage    string  `json:"coverImage"`
	Price         float64 `json:"price" binding:"required"`
	Rating        float64 `json:"rating"`
	Genre         string  `json:"genre"`
	Language      string  `json:"language"`
	Publisher     string  `json:"publisher"`
	PublishedYear string  `json:"publishedYear"`
	PageCount     int     `json:"pageCount"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// BookStorage defines possible operations on book entity.
type BookStorage interface {
	Add(ctx context.Context, id string, book Book) error
	GetOne(ctx context.Context, id string) (Book, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
}

// Sort orders accepted on catalog listing.
const (
	SortPriceAscending  = "price-asc"
	SortPriceDescending = "price-desc"
	SortRating          = "rating"
)

// BookQuery carries the catalog browsing parameters: a free text search
// on title and author, a genre filter, a sort order and the pagination
// window. Zero values mean no filtering, insertion order, first page.
type BookQuery struct {
	Search string
	Genre  string
	Sort   string
	Page   int
	Limit  int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps the pagination window to sane bounds.
func (q *BookQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
}

// Offset returns the index of the first record of the requested page.
func (q *BookQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
