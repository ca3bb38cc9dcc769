package book

import "librarydesk/model"

type BookReq struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	PublicationYear int     `json:"publication_year" validate:"required"`
	ISBN10          *string `json:"isbn10"`
	ISBN13          *string `json:"isbn13"`
	CoverImage      *string `json:"cover_image"`
	Synopsis        *string `json:"synopsis"`
	Category        *string `json:"category"`
	Language        *string `json:"language"`
	Available       *bool   `json:"available"`
}

func (r BookReq) toModel(id int64) *model.Book {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return &model.Book{
		ID:              id,
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		ISBN10:          r.ISBN10,
		ISBN13:          r.ISBN13,
		CoverImage:      r.CoverImage,
		Synopsis:        r.Synopsis,
		Category:        r.Category,
		Language:        r.Language,
		Available:       available,
	}
}
