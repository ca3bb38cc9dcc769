package rental

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"librarydesk/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrUserNotFound    ErrCode = "USER_NOT_FOUND"
	ErrRentalNotFound  ErrCode = "RENTAL_NOT_FOUND"
	ErrBookUnavailable ErrCode = "BOOK_UNAVAILABLE"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
	ErrExtendReturned  ErrCode = "EXTEND_RETURNED"
	ErrAlreadyExtended ErrCode = "ALREADY_EXTENDED"
	ErrEndDateMissing  ErrCode = "END_DATE_REQUIRED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Err wraps a code as an error; the inverse of Code.
func Err(c ErrCode) error { return makeErr(c) }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// CheckoutReq carries both ids explicitly; the book id is never
// injected into the rental payload by the transport layer.
type CheckoutReq struct {
	BookID    int64
	UserID    string
	StartDate model.Date
	EndDate   model.Date
}

type Repo interface {
	GetBookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)

	SetBookAvailability(ctx context.Context, tx *sql.Tx, bookID int64, available bool) error
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64) error
	SetExtension(ctx context.Context, tx *sql.Tx, rentalID int64, endDate model.Date) error

	Detail(ctx context.Context, rentalID int64) (*model.RentalDetail, error)
	List(ctx context.Context) ([]model.RentalDetail, error)
	Update(ctx context.Context, r *model.Rental) error
	Delete(ctx context.Context, rentalID int64) error
}

type Service interface {
	// Checkout: open a rental and mark the book unavailable.
	Checkout(ctx context.Context, req CheckoutReq) (*model.RentalDetail, error)

	// Return: close an active rental and free the book.
	Return(ctx context.Context, rentalID int64) (*model.RentalDetail, error)

	// Extend: move the end date once per rental.
	Extend(ctx context.Context, rentalID int64, newEnd model.Date) (*model.RentalDetail, error)

	List(ctx context.Context) ([]model.RentalDetail, error)
	Detail(ctx context.Context, rentalID int64) (*model.RentalDetail, error)
	Update(ctx context.Context, r *model.Rental) (*model.RentalDetail, error)
	Delete(ctx context.Context, rentalID int64) error
}

// ----- Service implementation -----

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

// Checkout runs the read-decide-write sequence in one transaction with
// the book row locked, so two concurrent checkouts cannot both observe
// available=true and the book flip and the rental insert land together.
func (s *service) Checkout(ctx context.Context, req CheckoutReq) (out *model.RentalDetail, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := s.r.GetBookForUpdate(ctx, tx, req.BookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}

	if err = CheckCheckout(b); err != nil {
		return nil, err
	}

	if err = s.r.SetBookAvailability(ctx, tx, b.ID, false); err != nil {
		return nil, err
	}

	rt := &model.Rental{
		BookID:    req.BookID,
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err = s.r.Insert(ctx, tx, rt); err != nil {
		if derr := mapConstraintErr(err); derr != nil {
			err = derr
		}
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s.r.Detail(ctx, rt.ID)
}

func (s *service) Return(ctx context.Context, rentalID int64) (out *model.RentalDetail, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rt, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		return nil, err
	}

	if err = CheckReturn(rt); err != nil {
		return nil, err
	}

	if err = s.r.MarkReturned(ctx, tx, rt.ID); err != nil {
		return nil, err
	}
	if err = s.r.SetBookAvailability(ctx, tx, rt.BookID, true); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s.r.Detail(ctx, rt.ID)
}

func (s *service) Extend(ctx context.Context, rentalID int64, newEnd model.Date) (out *model.RentalDetail, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rt, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		return nil, err
	}

	// The new end date is not checked against the current dates: a
	// non-advancing extension is accepted, as the record keeper has
	// always done.
	if err = CheckExtend(rt, newEnd); err != nil {
		return nil, err
	}

	if err = s.r.SetExtension(ctx, tx, rt.ID, newEnd); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s.r.Detail(ctx, rt.ID)
}

func (s *service) List(ctx context.Context) ([]model.RentalDetail, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, rentalID int64) (*model.RentalDetail, error) {
	d, err := s.r.Detail(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		return nil, err
	}
	return d, nil
}

func (s *service) Update(ctx context.Context, rt *model.Rental) (*model.RentalDetail, error) {
	if err := s.r.Update(ctx, rt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		if derr := mapConstraintErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return s.r.Detail(ctx, rt.ID)
}

func (s *service) Delete(ctx context.Context, rentalID int64) error {
	if err := s.r.Delete(ctx, rentalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrRentalNotFound)
		}
		return err
	}
	return nil
}

// mapConstraintErr translates foreign-key violations on the rentals
// table into the coded not-found errors callers expect.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		if strings.Contains(cn, "user") {
			return makeErr(ErrUserNotFound)
		}
		if strings.Contains(cn, "book") {
			return makeErr(ErrBookNotFound)
		}
	}
	return nil
}
