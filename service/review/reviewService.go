package reviewsvc

import (
	"context"
	"database/sql"
	"errors"

	"librarydesk/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrBookNotFound = errors.New("book not found")
)

type Repo interface {
	Create(ctx context.Context, rv *model.Review) error
	List(ctx context.Context) ([]model.Review, error)
	Detail(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, rv *model.Review) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, rv *model.Review) (*model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	Detail(ctx context.Context, id int64) (*model.Review, error)
	Update(ctx context.Context, rv *model.Review) (*model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, rv *model.Review) (*model.Review, error) {
	if err := s.r.Create(ctx, rv); err != nil {
		if isBookFKViolation(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) List(ctx context.Context) ([]model.Review, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Review, error) {
	rv, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) Update(ctx context.Context, rv *model.Review) (*model.Review, error) {
	if err := s.r.Update(ctx, rv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isBookFKViolation(err) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return rv, nil
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

// The reviews table only references books, so any FK violation here
// means the target book is gone.
func isBookFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
