package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"librarydesk/model"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrInvalid  = errors.New("invalid payload")
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.BookDetail, error)
	Detail(ctx context.Context, id int64) (*model.BookDetail, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, b *model.Book) (*model.BookDetail, error)
	List(ctx context.Context) ([]model.BookDetail, error)
	Detail(ctx context.Context, id int64) (*model.BookDetail, error)
	Update(ctx context.Context, b *model.Book) (*model.BookDetail, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) (*model.BookDetail, error) {
	if b.Title == "" || b.Author == "" {
		return nil, ErrInvalid
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return &model.BookDetail{Book: *b, Reviews: []model.Review{}}, nil
}

func (s *service) List(ctx context.Context) ([]model.BookDetail, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.BookDetail, error) {
	d, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *service) Update(ctx context.Context, b *model.Book) (*model.BookDetail, error) {
	if b.Title == "" || b.Author == "" {
		return nil, ErrInvalid
	}
	if err := s.r.Update(ctx, b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.r.Detail(ctx, b.ID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
