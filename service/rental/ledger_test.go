package rental_test

import (
	"testing"
	"time"

	"librarydesk/model"
	rental "librarydesk/service/rental"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) model.Date { return model.NewDate(y, m, d) }

func TestCanCheckout(t *testing.T) {
	require.True(t, rental.CanCheckout(&model.Book{Available: true}))
	require.False(t, rental.CanCheckout(&model.Book{Available: false}))
}

func TestCanReturn(t *testing.T) {
	require.True(t, rental.CanReturn(&model.Rental{Returned: false}))
	require.False(t, rental.CanReturn(&model.Rental{Returned: true}))
}

func TestCanExtend(t *testing.T) {
	require.True(t, rental.CanExtend(&model.Rental{}))
	require.False(t, rental.CanExtend(&model.Rental{Extended: true}))
	require.False(t, rental.CanExtend(&model.Rental{Returned: true}))
	require.False(t, rental.CanExtend(&model.Rental{Returned: true, Extended: true}))
}

func TestCheckCheckout(t *testing.T) {
	require.NoError(t, rental.CheckCheckout(&model.Book{Available: true}))

	err := rental.CheckCheckout(&model.Book{Available: false})
	require.Error(t, err)
	require.Equal(t, rental.ErrBookUnavailable, rental.Code(err))
}

func TestCheckReturn(t *testing.T) {
	require.NoError(t, rental.CheckReturn(&model.Rental{}))

	err := rental.CheckReturn(&model.Rental{Returned: true})
	require.Error(t, err)
	require.Equal(t, rental.ErrAlreadyReturned, rental.Code(err))
}

func TestCheckExtend_OK(t *testing.T) {
	r := &model.Rental{
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 15),
	}
	require.NoError(t, rental.CheckExtend(r, date(2024, 1, 20)))
}

func TestCheckExtend_CheckOrder(t *testing.T) {
	// A returned rental wins over everything, even a missing date.
	err := rental.CheckExtend(&model.Rental{Returned: true, Extended: true}, model.Date{})
	require.Equal(t, rental.ErrExtendReturned, rental.Code(err))

	// Extended is reported before the missing date.
	err = rental.CheckExtend(&model.Rental{Extended: true}, model.Date{})
	require.Equal(t, rental.ErrAlreadyExtended, rental.Code(err))

	// Only an otherwise extendable rental reports the missing date.
	err = rental.CheckExtend(&model.Rental{}, model.Date{})
	require.Equal(t, rental.ErrEndDateMissing, rental.Code(err))
}

func TestCheckExtend_SecondExtensionRejectedRegardlessOfDate(t *testing.T) {
	r := &model.Rental{Extended: true}
	for _, d := range []model.Date{date(2024, 1, 25), date(2030, 6, 1), {}} {
		err := rental.CheckExtend(r, d)
		require.Equal(t, rental.ErrAlreadyExtended, rental.Code(err))
	}
}

func TestCheckExtend_NoDateOrderingRule(t *testing.T) {
	// A non-advancing or even backwards end date is accepted; the
	// ledger imposes no ordering between the dates.
	r := &model.Rental{
		StartDate: date(2024, 1, 10),
		EndDate:   date(2024, 1, 20),
	}
	require.NoError(t, rental.CheckExtend(r, date(2024, 1, 5)))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, rental.ErrBookUnavailable, rental.Code(rental.Err(rental.ErrBookUnavailable)))
	require.Equal(t, rental.ErrCode(""), rental.Code(nil))
}
