// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"

	"librarydesk/model"
)

type Repo interface {
	// Row-locked reads used inside the checkout/return/extend transactions.
	GetBookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)

	// Writes applied inside the same transaction.
	SetBookAvailability(ctx context.Context, tx *sql.Tx, bookID int64, available bool) error
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) error
	SetExtension(ctx context.Context, tx *sql.Tx, rentalID int64, endDate model.Date) error

	// Plain reads and generic record maintenance.
	Detail(ctx context.Context, rentalID int64) (*model.RentalDetail, error)
	List(ctx context.Context) ([]model.RentalDetail, error)
	Update(ctx context.Context, r *model.Rental) error
	Delete(ctx context.Context, rentalID int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) GetBookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
	const q = `
		SELECT id, title, available
		FROM books
		WHERE id = $1
		FOR UPDATE`
	b := &model.Book{}
	if err := tx.QueryRowContext(ctx, q, bookID).Scan(&b.ID, &b.Title, &b.Available); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error) {
	const q = `
		SELECT id, book_id, user_id, start_date, end_date, returned, extended
		FROM rentals
		WHERE id = $1
		FOR UPDATE`
	rt := &model.Rental{}
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(
		&rt.ID, &rt.BookID, &rt.UserID, &rt.StartDate, &rt.EndDate, &rt.Returned, &rt.Extended,
	)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *repo) SetBookAvailability(ctx context.Context, tx *sql.Tx, bookID int64, available bool) error {
	const q = `
		UPDATE books
		SET available = $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, bookID, available)
	return err
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, rt *model.Rental) error {
	const q = `
		INSERT INTO rentals (book_id, user_id, start_date, end_date, returned, extended)
		VALUES ($1, $2, $3, $4, FALSE, FALSE)
		RETURNING id`
	return tx.QueryRowContext(ctx, q, rt.BookID, rt.UserID, rt.StartDate, rt.EndDate).Scan(&rt.ID)
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) error {
	const q = `
		UPDATE rentals
		SET returned = TRUE
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID)
	return err
}

func (r *repo) SetExtension(ctx context.Context, tx *sql.Tx, rentalID int64, endDate model.Date) error {
	const q = `
		UPDATE rentals
		SET end_date = $2,
			extended = TRUE
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, endDate)
	return err
}

const detailSelect = `
		SELECT
			r.id, r.book_id, r.user_id, r.start_date, r.end_date, r.returned, r.extended,
			b.title AS book_title,
			u.name  AS user_name
		FROM rentals r
		JOIN books b ON b.id = r.book_id
		JOIN library_users u ON u.user_id = r.user_id`

func (r *repo) Detail(ctx context.Context, rentalID int64) (*model.RentalDetail, error) {
	d := &model.RentalDetail{}
	err := r.db.QueryRowContext(ctx, detailSelect+`
		WHERE r.id = $1`, rentalID,
	).Scan(
		&d.ID, &d.BookID, &d.UserID, &d.StartDate, &d.EndDate, &d.Returned, &d.Extended,
		&d.BookTitle, &d.UserName,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repo) List(ctx context.Context) ([]model.RentalDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailSelect+`
		ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RentalDetail
	for rows.Next() {
		var d model.RentalDetail
		if err := rows.Scan(
			&d.ID, &d.BookID, &d.UserID, &d.StartDate, &d.EndDate, &d.Returned, &d.Extended,
			&d.BookTitle, &d.UserName,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, rt *model.Rental) error {
	const q = `
		UPDATE rentals
		SET book_id=$2, user_id=$3, start_date=$4, end_date=$5, returned=$6, extended=$7
		WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, rt.ID, rt.BookID, rt.UserID, rt.StartDate, rt.EndDate, rt.Returned, rt.Extended)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, rentalID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id=$1`, rentalID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
