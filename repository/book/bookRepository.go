package bookrepo

import (
	"context"
	"database/sql"

	"librarydesk/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.BookDetail, error)
	Detail(ctx context.Context, id int64) (*model.BookDetail, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, author, publication_year, isbn10, isbn13, cover_image, synopsis, category, language, available)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.PublicationYear, b.ISBN10, b.ISBN13,
		b.CoverImage, b.Synopsis, b.Category, b.Language, b.Available,
	).Scan(&b.ID)
}

func (r *repo) List(ctx context.Context) ([]model.BookDetail, error) {
	const q = `
SELECT id, title, author, publication_year, isbn10, isbn13, cover_image, synopsis, category, language, available
FROM books
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookDetail
	idx := make(map[int64]int)
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		idx[b.ID] = len(out)
		out = append(out, model.BookDetail{Book: b, Reviews: []model.Review{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reviews, err := r.reviewsFor(ctx, 0)
	if err != nil {
		return nil, err
	}
	for _, rv := range reviews {
		if i, ok := idx[rv.BookID]; ok {
			out[i].Reviews = append(out[i].Reviews, rv)
		}
	}
	return out, nil
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.BookDetail, error) {
	const q = `
SELECT id, title, author, publication_year, isbn10, isbn13, cover_image, synopsis, category, language, available
FROM books
WHERE id=$1`
	var b model.Book
	if err := scanBook(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		return nil, err
	}
	reviews, err := r.reviewsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.BookDetail{Book: b, Reviews: reviews}, nil
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
UPDATE books
SET title=$2, author=$3, publication_year=$4, isbn10=$5, isbn13=$6,
    cover_image=$7, synopsis=$8, category=$9, language=$10, available=$11
WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Author, b.PublicationYear, b.ISBN10, b.ISBN13,
		b.CoverImage, b.Synopsis, b.Category, b.Language, b.Available,
	)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// reviewsFor loads reviews for one book, or for all books when bookID
// is 0, ordered by id within each book.
func (r *repo) reviewsFor(ctx context.Context, bookID int64) ([]model.Review, error) {
	const q = `
SELECT id, book_id, reviewer, rating, comment
FROM reviews
WHERE ($1 = 0 OR book_id = $1)
ORDER BY book_id, id`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.User, &rv.Rating, &rv.Comment); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanBook(row rowScanner, b *model.Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.ISBN10, &b.ISBN13,
		&b.CoverImage, &b.Synopsis, &b.Category, &b.Language, &b.Available,
	)
}
