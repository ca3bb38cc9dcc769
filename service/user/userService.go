package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"librarydesk/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrIDRequired = errors.New("user id is required")
	ErrIDTaken    = errors.New("user id already taken")
	ErrEmailTaken = errors.New("email already registered")
	ErrBadInput   = errors.New("bad input")
)

type Repo interface {
	Create(ctx context.Context, u *model.LibraryUser) error
	List(ctx context.Context) ([]model.LibraryUser, error)
	ByID(ctx context.Context, id string) (*model.LibraryUser, error)
	Update(ctx context.Context, u *model.LibraryUser) error
	Delete(ctx context.Context, id string) error
}

type Service interface {
	Create(ctx context.Context, u *model.LibraryUser) (*model.LibraryUser, error)
	List(ctx context.Context) ([]model.LibraryUser, error)
	ByID(ctx context.Context, id string) (*model.LibraryUser, error)
	Update(ctx context.Context, u *model.LibraryUser) (*model.LibraryUser, error)
	Delete(ctx context.Context, id string) error

	// Login is an identity lookup, not credential authentication.
	Login(ctx context.Context, id string) (*model.LibraryUser, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, u *model.LibraryUser) (*model.LibraryUser, error) {
	u.ID = strings.TrimSpace(u.ID)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.ID == "" || u.Name == "" || u.Email == "" {
		return nil, ErrBadInput
	}

	if err := s.r.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "email") || strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
		if strings.Contains(cn, "pkey") || strings.Contains(msg, "user_id") {
			return ErrIDTaken
		}
		return ErrBadInput
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.LibraryUser, error) { return s.r.List(ctx) }

func (s *service) ByID(ctx context.Context, id string) (*model.LibraryUser, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, u *model.LibraryUser) (*model.LibraryUser, error) {
	if u.Name == "" || u.Email == "" {
		return nil, ErrBadInput
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := s.r.Update(ctx, u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *service) Login(ctx context.Context, id string) (*model.LibraryUser, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
