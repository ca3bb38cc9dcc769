package rental_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ctrl "librarydesk/app/echoServer/controller/rental"
	"librarydesk/model"
	rs "librarydesk/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// svcMock implements rs.Service with function fields.
type svcMock struct {
	checkoutFn func(ctx context.Context, req rs.CheckoutReq) (*model.RentalDetail, error)
	returnFn   func(ctx context.Context, id int64) (*model.RentalDetail, error)
	extendFn   func(ctx context.Context, id int64, end model.Date) (*model.RentalDetail, error)
}

func (m *svcMock) Checkout(ctx context.Context, req rs.CheckoutReq) (*model.RentalDetail, error) {
	return m.checkoutFn(ctx, req)
}
func (m *svcMock) Return(ctx context.Context, id int64) (*model.RentalDetail, error) {
	return m.returnFn(ctx, id)
}
func (m *svcMock) Extend(ctx context.Context, id int64, end model.Date) (*model.RentalDetail, error) {
	return m.extendFn(ctx, id, end)
}
func (m *svcMock) List(ctx context.Context) ([]model.RentalDetail, error) { return nil, nil }
func (m *svcMock) Detail(ctx context.Context, id int64) (*model.RentalDetail, error) {
	return nil, rs.Err(rs.ErrRentalNotFound)
}
func (m *svcMock) Update(ctx context.Context, r *model.Rental) (*model.RentalDetail, error) {
	return nil, rs.Err(rs.ErrRentalNotFound)
}
func (m *svcMock) Delete(ctx context.Context, id int64) error { return rs.Err(rs.ErrRentalNotFound) }

func newController(svc rs.Service) *ctrl.Controller {
	return &ctrl.Controller{
		Svc: svc,
		V:   validator.New(),
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

func TestCheckout_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"book missing", rs.Err(rs.ErrBookNotFound), http.StatusNotFound, "Book not found"},
		{"user missing", rs.Err(rs.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"unavailable", rs.Err(rs.ErrBookUnavailable), http.StatusConflict, "Book is not available"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newController(&svcMock{
				checkoutFn: func(ctx context.Context, req rs.CheckoutReq) (*model.RentalDetail, error) {
					return nil, tc.err
				},
			})
			rec := doJSON(t, h.Checkout, http.MethodPost, "/v1/rentals",
				`{"book":1,"user":"u1","start_date":"2024-01-01","end_date":"2024-01-15"}`, nil)
			require.Equal(t, tc.wantStatus, rec.Code)
			require.Contains(t, rec.Body.String(), tc.wantMsg)
		})
	}
}

func TestCheckout_Created(t *testing.T) {
	h := newController(&svcMock{
		checkoutFn: func(ctx context.Context, req rs.CheckoutReq) (*model.RentalDetail, error) {
			require.Equal(t, int64(3), req.BookID)
			require.Equal(t, "u1", req.UserID)
			return &model.RentalDetail{
				Rental: model.Rental{
					ID: 10, BookID: req.BookID, UserID: req.UserID,
					StartDate: req.StartDate, EndDate: req.EndDate,
				},
				BookTitle: "Dune",
				UserName:  "Ada",
			}, nil
		},
	})
	rec := doJSON(t, h.Checkout, http.MethodPost, "/v1/rentals",
		`{"book":3,"user":"u1","start_date":"2024-01-01","end_date":"2024-01-15"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"book_title":"Dune"`)
	require.Contains(t, rec.Body.String(), `"user_name":"Ada"`)
	require.Contains(t, rec.Body.String(), `"start_date":"2024-01-01"`)
}

func TestCheckout_MissingDates(t *testing.T) {
	h := newController(&svcMock{})
	rec := doJSON(t, h.Checkout, http.MethodPost, "/v1/rentals",
		`{"book":3,"user":"u1"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReturn_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"rental missing", rs.Err(rs.ErrRentalNotFound), http.StatusNotFound, "Rental not found"},
		{"already returned", rs.Err(rs.ErrAlreadyReturned), http.StatusConflict, "Book already returned"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newController(&svcMock{
				returnFn: func(ctx context.Context, id int64) (*model.RentalDetail, error) {
					return nil, tc.err
				},
			})
			rec := doJSON(t, h.Return, http.MethodPost, "/v1/rentals/5/return", "", map[string]string{"id": "5"})
			require.Equal(t, tc.wantStatus, rec.Code)
			require.Contains(t, rec.Body.String(), tc.wantMsg)
		})
	}
}

func TestExtend_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"rental missing", rs.Err(rs.ErrRentalNotFound), http.StatusNotFound, "Rental not found"},
		{"returned", rs.Err(rs.ErrExtendReturned), http.StatusConflict, "Cannot extend a returned rental"},
		{"already extended", rs.Err(rs.ErrAlreadyExtended), http.StatusConflict, "Rental already extended"},
		{"no date", rs.Err(rs.ErrEndDateMissing), http.StatusBadRequest, "New end date is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newController(&svcMock{
				extendFn: func(ctx context.Context, id int64, end model.Date) (*model.RentalDetail, error) {
					return nil, tc.err
				},
			})
			rec := doJSON(t, h.Extend, http.MethodPost, "/v1/rentals/5/extend",
				`{"end_date":"2024-01-20"}`, map[string]string{"id": "5"})
			require.Equal(t, tc.wantStatus, rec.Code)
			require.Contains(t, rec.Body.String(), tc.wantMsg)
		})
	}
}

func TestInvalidID(t *testing.T) {
	h := newController(&svcMock{})
	for _, id := range []string{"abc", "0", "-3"} {
		rec := doJSON(t, h.Return, http.MethodPost, "/v1/rentals/x/return", "", map[string]string{"id": id})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

// memService drives the real ledger over in-memory records so the full
// lifecycle can run through the controller without a database.
type memService struct {
	book    model.Book
	rentals map[int64]*model.Rental
	nextID  int64
}

func newMemService() *memService {
	return &memService{
		book:    model.Book{ID: 1, Title: "Dune", Available: true},
		rentals: map[int64]*model.Rental{},
		nextID:  1,
	}
}

func (m *memService) detail(r *model.Rental) *model.RentalDetail {
	return &model.RentalDetail{Rental: *r, BookTitle: m.book.Title, UserName: "Ada"}
}

func (m *memService) Checkout(ctx context.Context, req rs.CheckoutReq) (*model.RentalDetail, error) {
	if req.BookID != m.book.ID {
		return nil, rs.Err(rs.ErrBookNotFound)
	}
	if err := rs.CheckCheckout(&m.book); err != nil {
		return nil, err
	}
	m.book.Available = false
	r := &model.Rental{
		ID: m.nextID, BookID: req.BookID, UserID: req.UserID,
		StartDate: req.StartDate, EndDate: req.EndDate,
	}
	m.nextID++
	m.rentals[r.ID] = r
	return m.detail(r), nil
}

func (m *memService) Return(ctx context.Context, id int64) (*model.RentalDetail, error) {
	r, ok := m.rentals[id]
	if !ok {
		return nil, rs.Err(rs.ErrRentalNotFound)
	}
	if err := rs.CheckReturn(r); err != nil {
		return nil, err
	}
	r.Returned = true
	m.book.Available = true
	return m.detail(r), nil
}

func (m *memService) Extend(ctx context.Context, id int64, end model.Date) (*model.RentalDetail, error) {
	r, ok := m.rentals[id]
	if !ok {
		return nil, rs.Err(rs.ErrRentalNotFound)
	}
	if err := rs.CheckExtend(r, end); err != nil {
		return nil, err
	}
	r.EndDate = end
	r.Extended = true
	return m.detail(r), nil
}

func (m *memService) List(ctx context.Context) ([]model.RentalDetail, error) { return nil, nil }
func (m *memService) Detail(ctx context.Context, id int64) (*model.RentalDetail, error) {
	r, ok := m.rentals[id]
	if !ok {
		return nil, rs.Err(rs.ErrRentalNotFound)
	}
	return m.detail(r), nil
}
func (m *memService) Update(ctx context.Context, r *model.Rental) (*model.RentalDetail, error) {
	return nil, rs.Err(rs.ErrRentalNotFound)
}
func (m *memService) Delete(ctx context.Context, id int64) error {
	return rs.Err(rs.ErrRentalNotFound)
}

// activeRentals reports whether any rental on the book is unreturned;
// the availability flag must always be its negation.
func (m *memService) invariantHolds() bool {
	active := false
	for _, r := range m.rentals {
		if r.BookID == m.book.ID && !r.Returned {
			active = true
		}
	}
	return m.book.Available == !active
}

func TestRentalLifecycleScenario(t *testing.T) {
	svc := newMemService()
	h := newController(svc)

	// checkout succeeds and flips availability
	rec := doJSON(t, h.Checkout, http.MethodPost, "/v1/rentals",
		`{"book":1,"user":"u1","start_date":"2024-01-01","end_date":"2024-01-15"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.False(t, svc.book.Available)
	require.True(t, svc.invariantHolds())

	// a second checkout conflicts and changes nothing
	rec = doJSON(t, h.Checkout, http.MethodPost, "/v1/rentals",
		`{"book":1,"user":"u2","start_date":"2024-01-02","end_date":"2024-01-16"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Book is not available")
	require.Len(t, svc.rentals, 1)

	// first extension succeeds
	rec = doJSON(t, h.Extend, http.MethodPost, "/v1/rentals/1/extend",
		`{"end_date":"2024-01-20"}`, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.rentals[1].Extended)
	require.Equal(t, "2024-01-20", svc.rentals[1].EndDate.String())

	// second extension conflicts regardless of the date
	rec = doJSON(t, h.Extend, http.MethodPost, "/v1/rentals/1/extend",
		`{"end_date":"2024-01-25"}`, map[string]string{"id": "1"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Rental already extended")
	require.Equal(t, "2024-01-20", svc.rentals[1].EndDate.String())

	// return succeeds, frees the book
	rec = doJSON(t, h.Return, http.MethodPost, "/v1/rentals/1/return", "", map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.rentals[1].Returned)
	require.True(t, svc.book.Available)
	require.True(t, svc.invariantHolds())

	// a second return conflicts
	rec = doJSON(t, h.Return, http.MethodPost, "/v1/rentals/1/return", "", map[string]string{"id": "1"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Book already returned")

	// the book can be checked out again
	rec = doJSON(t, h.Checkout, http.MethodPost, "/v1/rentals",
		`{"book":1,"user":"u2","start_date":"2024-02-01","end_date":"2024-02-15"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, svc.invariantHolds())
}
