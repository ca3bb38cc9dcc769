package database

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the tables if they do not exist. Deleting a book
// cascades to its rentals and reviews; deleting a user cascades to
// their rentals.
func InitSchema(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			author VARCHAR(255) NOT NULL,
			publication_year INT NOT NULL,
			isbn10 VARCHAR(10),
			isbn13 VARCHAR(13),
			cover_image TEXT,
			synopsis TEXT,
			category VARCHAR(100),
			language VARCHAR(50),
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS library_users (
			user_id VARCHAR(100) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(254) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGSERIAL PRIMARY KEY,
			book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			reviewer VARCHAR(100) NOT NULL,
			rating INT NOT NULL,
			comment TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rentals (
			id BIGSERIAL PRIMARY KEY,
			book_id BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			user_id VARCHAR(100) NOT NULL REFERENCES library_users(user_id) ON DELETE CASCADE,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			returned BOOLEAN NOT NULL DEFAULT FALSE,
			extended BOOLEAN NOT NULL DEFAULT FALSE
		)`,
	}

	for _, q := range queries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
