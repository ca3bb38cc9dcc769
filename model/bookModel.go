// model/bookModel.go
package model

type Book struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationYear int     `json:"publication_year"`
	ISBN10          *string `json:"isbn10"`
	ISBN13          *string `json:"isbn13"`
	CoverImage      *string `json:"cover_image"`
	Synopsis        *string `json:"synopsis"`
	Category        *string `json:"category"`
	Language        *string `json:"language"`
	Available       bool    `json:"available"`
}

// BookDetail is the response shape: the book plus its reviews, ordered by id.
// Reviews are joined at read time, never stored on the book row.
type BookDetail struct {
	Book
	Reviews []Review `json:"reviews"`
}
