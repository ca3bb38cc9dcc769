package userrepo

import (
	"context"
	"database/sql"

	"librarydesk/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.LibraryUser) error
	List(ctx context.Context) ([]model.LibraryUser, error)
	ByID(ctx context.Context, id string) (*model.LibraryUser, error)
	Update(ctx context.Context, u *model.LibraryUser) error
	Delete(ctx context.Context, id string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.LibraryUser) error {
	const q = `
INSERT INTO library_users (user_id, name, email)
VALUES ($1,$2,$3)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email)
	return err
}

func (r *repo) List(ctx context.Context) ([]model.LibraryUser, error) {
	const q = `
SELECT user_id, name, email
FROM library_users
ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LibraryUser
	for rows.Next() {
		var u model.LibraryUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id string) (*model.LibraryUser, error) {
	u := &model.LibraryUser{}
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, name, email
FROM library_users
WHERE user_id=$1`, id,
	).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Update(ctx context.Context, u *model.LibraryUser) error {
	const q = `
UPDATE library_users
SET name=$2, email=$3
WHERE user_id=$1`
	res, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM library_users WHERE user_id=$1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
