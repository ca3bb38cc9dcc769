package reviewrepo

import (
	"context"
	"database/sql"

	"librarydesk/model"
)

type Repo interface {
	Create(ctx context.Context, rv *model.Review) error
	List(ctx context.Context) ([]model.Review, error)
	Detail(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rv *model.Review) error {
	const q = `
INSERT INTO reviews (book_id, reviewer, rating, comment)
VALUES ($1,$2,$3,$4)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, rv.BookID, rv.User, rv.Rating, rv.Comment).Scan(&rv.ID)
}

func (r *repo) List(ctx context.Context) ([]model.Review, error) {
	const q = `
SELECT id, book_id, reviewer, rating, comment
FROM reviews
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.User, &rv.Rating, &rv.Comment); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Review, error) {
	const q = `
SELECT id, book_id, reviewer, rating, comment
FROM reviews
WHERE id=$1`
	var rv model.Review
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rv.ID, &rv.BookID, &rv.User, &rv.Rating, &rv.Comment)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repo) Update(ctx context.Context, rv *model.Review) error {
	const q = `
UPDATE reviews
SET book_id=$2, reviewer=$3, rating=$4, comment=$5
WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, rv.ID, rv.BookID, rv.User, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
